package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type stubCatalog struct {
	entries map[string]*domain.CatalogEntry
	err     error
}

func (s *stubCatalog) FindAllByID(context.Context, []string) ([]domain.CatalogEntry, error) {
	return nil, nil
}

func (s *stubCatalog) Restock(context.Context, string, int) error { return nil }

func (s *stubCatalog) UpdatePrice(_ context.Context, id string, priceCents int64) error {
	if s.err != nil {
		return s.err
	}
	e, ok := s.entries[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	e.UnitPriceCents = priceCents
	return nil
}

func TestPriceChangedHandler_UpdatesPrice(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*domain.CatalogEntry{
		"P1": {ID: "P1", UnitPriceCents: 500},
	}}
	h := NewPriceChangedHandler(usecase.NewChangePrice(catalog))

	err := h.Handle(context.Background(), usecase.PriceChangedMsg{ProductID: "P1", PriceCents: 750})

	require.NoError(t, err)
	assert.Equal(t, int64(750), catalog.entries["P1"].UnitPriceCents)
}

func TestPriceChangedHandler_SkipsUnknownProductAndBadPrice(t *testing.T) {
	catalog := &stubCatalog{entries: map[string]*domain.CatalogEntry{}}
	h := NewPriceChangedHandler(usecase.NewChangePrice(catalog))

	// Both are consumed without error so the group offset advances.
	assert.NoError(t, h.Handle(context.Background(),
		usecase.PriceChangedMsg{ProductID: "ghost", PriceCents: 100}))
	assert.NoError(t, h.Handle(context.Background(),
		usecase.PriceChangedMsg{ProductID: "P1", PriceCents: -5}))
}

func TestPriceChangedHandler_PropagatesInfraErrors(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("deadlock")}
	h := NewPriceChangedHandler(usecase.NewChangePrice(catalog))

	err := h.Handle(context.Background(), usecase.PriceChangedMsg{ProductID: "P1", PriceCents: 100})

	assert.Error(t, err)
}
