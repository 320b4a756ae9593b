package model

// Pack is a one-time purchasable bundle of feature credits.
type Pack struct {
	Key       string
	Label     string
	Credits   int
	PriceID   string
	ProductID string
}

// PackOption is the public view of a Pack. Purchase identifiers stay on the server.
type PackOption struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Credits int    `json:"credits"`
}

// Option returns the public view of p.
func (p Pack) Option() PackOption {
	return PackOption{Key: p.Key, Label: p.Label, Credits: p.Credits}
}
