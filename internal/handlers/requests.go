package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ==== REQUEST STRUCTS ====

type ProductReq struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10,max=30"`
	Image       string `json:"image" validate:"required"`
}

type ImportProductReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required"`
}

type VariantReq struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	SKU       string  `json:"sku" validate:"required"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Stock     int     `json:"stock" validate:"gte=0"`
}

type DeleteImageReq struct {
	PublicID string `json:"public_id" validate:"required"`
}

// newValidator reports field names by json tag so error maps line up with
// the payload the form submitted.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors flattens validator output into a per-field message map so
// forms can render errors inline.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "Body request is not valid"
		return out
	}

	for _, e := range errs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "gt":
			out[field] = fmt.Sprintf("%s must be greater than %s", field, e.Param())
		case "gte":
			out[field] = fmt.Sprintf("%s must be at least %s", field, e.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
