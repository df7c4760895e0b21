package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — проверка карточки товара по тегам `validate` доменной структуры.
type ProductValidator struct {
	v *validator.Validate
}

// NewProductValidator — конструктор ProductValidator.
// Возвращает ErrInvalidProduct (с обёрнутой причиной) при любой проблеме.
func NewProductValidator() *ProductValidator {
	return &ProductValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate — проверяет корректность полей товара.
func (pv *ProductValidator) Validate(_ context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	err := pv.v.Struct(product)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s не проходит правило %q", ErrInvalidProduct, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
}
