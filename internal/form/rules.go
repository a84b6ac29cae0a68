package form

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule inspects a draft and returns nil when it passes.
type Rule[T any] func(T) *ValidationError

var tagMessages = map[string]string{
	"required": "campo obrigatório",
	"email":    "e-mail inválido",
	"oneof":    "valor não permitido",
	"gte":      "valor abaixo do mínimo",
	"gt":       "valor deve ser positivo",
	"lte":      "valor acima do máximo",
	"min":      "valor muito curto",
	"max":      "valor muito longo",
	"len":      "tamanho inválido",
	"numeric":  "deve conter apenas números",
	"url":      "URL inválida",
}

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// StructRule evaluates the struct tags of the draft and reports the first
// failing field.
func StructRule[T any](v *validator.Validate) Rule[T] {
	return func(draft T) *ValidationError {
		err := v.Struct(draft)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return Invalid("", err.Error())
		}
		fe := verrs[0]
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "valor inválido"
		}
		return Invalid(fieldPath(fe), msg)
	}
}

// fieldPath strips the root type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Required fails when value is blank after trimming.
func Required(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, tagMessages["required"])
	}
	return nil
}

// DistributionTotal sums percentages rounded to cents for display.
func DistributionTotal(percents []float64) float64 {
	var sum float64
	for _, p := range percents {
		sum += p
	}
	return math.Round(sum*100) / 100
}

// distributionTolerance absorbs float rounding only; any real difference
// from 100, even below a cent, is rejected.
const distributionTolerance = 1e-9

// Distribution fails unless percents sum to exactly 100, so 33.33+33.33+33.34
// passes and 50+49.996 does not.
func Distribution(field string, percents []float64) *ValidationError {
	if len(percents) == 0 {
		return Invalid(field, "informe ao menos uma empresa")
	}
	var sum float64
	for _, p := range percents {
		sum += p
	}
	if math.Abs(sum-100) > distributionTolerance {
		return Invalid(field, "a distribuição deve somar 100%")
	}
	return nil
}
