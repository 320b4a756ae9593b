package service

import (
	"encoding/json"
	"testing"

	"jokemeter/internal/config"
	"jokemeter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRegistryOmitsUnconfiguredSlots(t *testing.T) {
	reg := NewPackRegistry([]config.NamedSlot{
		{Key: "small", Slot: config.PackSlot{PriceID: "price_s"}},
		{Key: "medium", Slot: config.PackSlot{Credits: 200, Label: "Medium"}},
		{Key: "large", Slot: config.PackSlot{ProductID: "prod_l", Credits: 1000}},
	})

	opts := reg.List()
	require.Len(t, opts, 2)
	assert.Equal(t, "small", opts[0].Key)
	assert.Equal(t, "large", opts[1].Key)

	_, ok := reg.Get("medium")
	assert.False(t, ok)
}

func TestPackRegistryWhitespaceIdentifiersCountAsEmpty(t *testing.T) {
	reg := NewPackRegistry([]config.NamedSlot{
		{Key: "small", Slot: config.PackSlot{PriceID: "  ", ProductID: "\t"}},
	})
	assert.Empty(t, reg.List())
}

func TestPackRegistryDefaults(t *testing.T) {
	reg := NewPackRegistry([]config.NamedSlot{
		{Key: "medium", Slot: config.PackSlot{ProductID: "prod_m"}},
	})

	p, ok := reg.Get("medium")
	require.True(t, ok)
	assert.Equal(t, 200, p.Credits)
	assert.Equal(t, "Medium pack (200 credits)", p.Label)
	assert.Equal(t, "prod_m", p.ProductID)
}

func TestPackRegistryListWithholdsIdentifiers(t *testing.T) {
	reg := NewPackRegistry([]config.NamedSlot{
		{Key: "small", Slot: config.PackSlot{PriceID: "price_secret", ProductID: "prod_secret", Credits: 50, Label: "Small"}},
	})

	body, err := json.Marshal(reg.List())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"small","label":"Small","credits":50}]`, string(body))
	assert.NotContains(t, string(body), "secret")
	assert.Equal(t, []model.PackOption{{Key: "small", Label: "Small", Credits: 50}}, reg.List())
}

func TestPackRegistryEmpty(t *testing.T) {
	reg := NewPackRegistry(nil)
	assert.NotNil(t, reg.List())
	assert.Empty(t, reg.List())
}
