package dto

// CheckoutResponseDTO returns the redirect URL plus the provider's raw payload.
type CheckoutResponseDTO struct {
	URL  string         `json:"url"`
	Data map[string]any `json:"data"`
}

type PortalResponseDTO struct {
	URL string `json:"url"`
}
