package dto

import "jokemeter/internal/model"

type TopupOptionsResponseDTO struct {
	Options []model.PackOption `json:"options"`
}

// TopupCheckoutRequestDTO selects a pack. Pack may also arrive as ?pack=.
type TopupCheckoutRequestDTO struct {
	Pack string `json:"pack" validate:"required,max=64"`
}

type TopupCheckoutResponseDTO struct {
	URL string `json:"url"`
}
