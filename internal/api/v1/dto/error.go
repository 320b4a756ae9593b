package dto

// ErrorResponseDTO is the JSON body of every non-2xx API response.
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UpgradeRequiredDTO is returned with 402 when the customer has no credits left.
type UpgradeRequiredDTO struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}
