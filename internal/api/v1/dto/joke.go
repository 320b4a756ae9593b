package dto

type JokeResponseDTO struct {
	Joke      string   `json:"joke"`
	Remaining *float64 `json:"remaining"`
}
