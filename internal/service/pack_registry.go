package service

import (
	"fmt"
	"strings"

	"jokemeter/internal/config"
	"jokemeter/internal/model"
)

// defaultPackCredits applies when a slot does not set CREDITS.
var defaultPackCredits = map[string]int{
	"small":  50,
	"medium": 200,
	"large":  500,
}

// PackRegistry is the immutable set of purchasable top-up packs.
type PackRegistry interface {
	List() []model.PackOption
	Get(key string) (model.Pack, bool)
}

type packRegistry struct {
	packs []model.Pack
	byKey map[string]model.Pack
}

// NewPackRegistry builds the registry from configured slots. A slot with
// neither a price nor a product id is left out.
func NewPackRegistry(slots []config.NamedSlot) PackRegistry {
	r := &packRegistry{byKey: make(map[string]model.Pack, len(slots))}
	for _, s := range slots {
		priceID := strings.TrimSpace(s.Slot.PriceID)
		productID := strings.TrimSpace(s.Slot.ProductID)
		if priceID == "" && productID == "" {
			continue
		}
		credits := s.Slot.Credits
		if credits <= 0 {
			credits = defaultPackCredits[s.Key]
		}
		label := s.Slot.Label
		if label == "" {
			label = fmt.Sprintf("%s pack (%d credits)", titleCase(s.Key), credits)
		}
		p := model.Pack{
			Key:       s.Key,
			Label:     label,
			Credits:   credits,
			PriceID:   priceID,
			ProductID: productID,
		}
		r.packs = append(r.packs, p)
		r.byKey[p.Key] = p
	}
	return r
}

func (r *packRegistry) List() []model.PackOption {
	opts := make([]model.PackOption, 0, len(r.packs))
	for _, p := range r.packs {
		opts = append(opts, p.Option())
	}
	return opts
}

func (r *packRegistry) Get(key string) (model.Pack, bool) {
	p, ok := r.byKey[key]
	return p, ok
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
