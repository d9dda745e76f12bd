package usecase

import (
	"context"

	"github.com/washmart/washmart/internal/domain/model"
	"github.com/washmart/washmart/internal/domain/repository"
)

// CartUseCase groups shopper cart lines by owning store.
type CartUseCase struct {
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{products: products}
}

// GroupByStore resolves each cart line against the catalog and buckets lines
// by the product's owning store. Lines referencing unknown products are
// dropped; an empty cart yields an empty result, not an error.
func (u *CartUseCase) GroupByStore(ctx context.Context, lines []model.CartLine) (map[int64][]model.CartLine, error) {
	groups := make(map[int64][]model.CartLine)
	if len(lines) == 0 {
		return groups, nil
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	catalog, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		product, ok := catalog[line.ProductID]
		if !ok {
			continue
		}
		groups[product.StoreID] = append(groups[product.StoreID], line)
	}

	return groups, nil
}
