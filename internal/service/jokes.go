package service

import "math/rand/v2"

var jokes = []string{
	"Why did the AI cross the road? To optimize the chicken.",
	"I asked my model to tell a joke. It replied, 'I'm still training.'",
	"Neural nets are like onions: lots of layers and they make you cry when they overfit.",
	"My prompt engineer told me a joke. Sadly, the model took it literally.",
}

// RandomJoke is the metered action served by the gateway.
func RandomJoke() string {
	return jokes[rand.IntN(len(jokes))]
}
