package dto

type MeResponseDTO struct {
	UserID string `json:"userId"`
}

// CreditsResponseDTO carries the remaining balance; null when unknown.
type CreditsResponseDTO struct {
	Remaining *float64 `json:"remaining"`
}
