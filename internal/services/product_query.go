package services

import (
	"fmt"
	"strconv"

	"duckstore/internal/apperrors"
	"duckstore/internal/repositories"
)

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	boolField
)

type queryableField struct {
	column string
	kind   fieldKind
}

// queryableFields maps the JSON names clients may filter on to columns.
// Nothing outside this table ever reaches a WHERE clause.
var queryableFields = map[string]queryableField{
	"name":               {"name", textField},
	"description":        {"description", textField},
	"imageUrl":           {"image_url", textField},
	"color":              {"color", textField},
	"theme":              {"theme", textField},
	"_createdBy":         {"created_by", textField},
	"size":               {"size", numberField},
	"price":              {"price", numberField},
	"discountPercentage": {"discount_percentage", numberField},
	"inStock":            {"in_stock", boolField},
	"isOnDiscount":       {"is_on_discount", boolField},
	"isHidden":           {"is_hidden", boolField},
}

func lookupField(key string) (queryableField, error) {
	f, ok := queryableFields[key]
	if !ok {
		return queryableField{}, apperrors.ErrInvalidQuery.WithMessage(fmt.Sprintf("field %q cannot be queried", key))
	}
	return f, nil
}

// keyValueCondition builds the filter for GET /products/:key/:value. Text
// fields match case-insensitive substrings; other kinds parse the value.
func keyValueCondition(key, value string) (repositories.Condition, error) {
	f, err := lookupField(key)
	if err != nil {
		return repositories.Condition{}, err
	}

	switch f.kind {
	case textField:
		return repositories.Condition{Column: f.column, Op: repositories.OpContainsFold, Value: value}, nil
	case numberField:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return repositories.Condition{}, invalidValue(key, value)
		}
		return repositories.Condition{Column: f.column, Op: repositories.OpEquals, Value: n}, nil
	default:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return repositories.Condition{}, invalidValue(key, value)
		}
		return repositories.Condition{Column: f.column, Op: repositories.OpEquals, Value: b}, nil
	}
}

// bodyConditions builds an equality filter from a decoded JSON object. Values
// must be scalars of the field's type, so operator objects are rejected.
func bodyConditions(body map[string]any) ([]repositories.Condition, error) {
	conds := make([]repositories.Condition, 0, len(body))
	for key, raw := range body {
		f, err := lookupField(key)
		if err != nil {
			return nil, err
		}

		var ok bool
		switch f.kind {
		case textField:
			_, ok = raw.(string)
		case numberField:
			_, ok = raw.(float64)
		case boolField:
			_, ok = raw.(bool)
		}
		if !ok {
			return nil, invalidValue(key, raw)
		}
		conds = append(conds, repositories.Condition{Column: f.column, Op: repositories.OpEquals, Value: raw})
	}
	return conds, nil
}

func invalidValue(key string, value any) error {
	return apperrors.ErrInvalidQuery.WithMessage(fmt.Sprintf("invalid value %v for field %q", value, key))
}
