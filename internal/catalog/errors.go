package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateID     = errors.New("product id already exists")
)
