package repository

import (
	"context"

	"github.com/washmart/washmart/internal/domain/model"
)

// ProductRepository describes read access to the store catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
}
