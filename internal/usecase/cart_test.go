package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/washmart/washmart/internal/domain/model"
)

func TestGroupByStoreBucketsLines(t *testing.T) {
	uc := NewCartUseCase(washCatalog())

	groups, err := uc.GroupByStore(context.Background(), []model.CartLine{
		{ProductID: 10, Quantity: 2},
		{ProductID: 20, Quantity: 1},
		{ProductID: 11, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 store groups, got %d", len(groups))
	}
	if len(groups[1]) != 2 {
		t.Fatalf("expected 2 lines for store 1, got %d", len(groups[1]))
	}
	if len(groups[2]) != 1 {
		t.Fatalf("expected 1 line for store 2, got %d", len(groups[2]))
	}
	if groups[1][0].ProductID != 10 || groups[1][1].ProductID != 11 {
		t.Fatalf("store 1 lines out of order: %+v", groups[1])
	}
}

func TestGroupByStoreDropsUnresolvableLines(t *testing.T) {
	uc := NewCartUseCase(washCatalog())

	groups, err := uc.GroupByStore(context.Background(), []model.CartLine{
		{ProductID: 999, Quantity: 1},
		{ProductID: 10, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || len(groups[1]) != 1 {
		t.Fatalf("expected single resolvable line, got %+v", groups)
	}
}

func TestGroupByStoreEmptyCart(t *testing.T) {
	uc := NewCartUseCase(washCatalog())

	groups, err := uc.GroupByStore(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty cart must not error, got %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected empty result, got %+v", groups)
	}
}

func TestGroupByStorePropagatesCatalogError(t *testing.T) {
	catalogErr := errors.New("catalog down")
	uc := NewCartUseCase(stubProductRepository{err: catalogErr})

	if _, err := uc.GroupByStore(context.Background(), []model.CartLine{{ProductID: 1, Quantity: 1}}); !errors.Is(err, catalogErr) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}
