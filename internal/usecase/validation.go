package usecase

import (
	"fmt"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
)

// ValidateLines checks a checkout line group before order creation.
func ValidateLines(lines []model.CartLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: order must contain at least one line", domainErrors.ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %d", domainErrors.ErrValidation, line.ProductID)
		}
	}
	return nil
}
