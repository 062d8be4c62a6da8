package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// Decimal is a money scalar. It serializes as a string with two decimal
// places and accepts strings, ints or floats as input.
var Decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Fixed-point decimal number, serialized as a string with two decimal places.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.StringFixed(2)
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.StringFixed(2)
		}
		if d, ok := toDecimal(value); ok {
			return d.StringFixed(2)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if d, ok := toDecimal(value); ok {
			return d
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return parseDecimalLiteral(v.Value)
		case *ast.IntValue:
			return parseDecimalLiteral(v.Value)
		case *ast.FloatValue:
			return parseDecimalLiteral(v.Value)
		}
		return nil
	},
})

func parseDecimalLiteral(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}

func toDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	}
	return decimal.Decimal{}, false
}
