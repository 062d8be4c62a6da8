package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/services"
	gql "github.com/shashiranjanraj/crm/pkg/graphql"
)

var customerFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":         &graphql.InputObjectFieldConfig{Type: graphql.String, Description: "Case-insensitive substring."},
		"email":        &graphql.InputObjectFieldConfig{Type: graphql.String, Description: "Case-insensitive substring."},
		"createdAtGte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"createdAtLte": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"phonePattern": &graphql.InputObjectFieldConfig{Type: graphql.String, Description: "Phone prefix."},
	},
})

var productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"priceGte": &graphql.InputObjectFieldConfig{Type: gql.Decimal},
		"priceLte": &graphql.InputObjectFieldConfig{Type: gql.Decimal},
		"stockGte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"stockLte": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"lowStock": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, Description: "Only products with stock below 10."},
	},
})

var orderFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"totalAmountGte": &graphql.InputObjectFieldConfig{Type: gql.Decimal},
		"totalAmountLte": &graphql.InputObjectFieldConfig{Type: gql.Decimal},
		"orderDateGte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"orderDateLte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"customerName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"productName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"productId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
	},
})

var customerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(gql.Decimal)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
	},
})

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime, Description: "Accepted but ignored; orders are dated on creation."},
	},
})

// ── argument decoding ────────────────────────────────────────────────────────

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optBool(m map[string]interface{}, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}

func optTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}

func optDecimal(m map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := m[key].(decimal.Decimal); ok {
		return &v
	}
	return nil
}

func filterArg(args map[string]interface{}) map[string]interface{} {
	m, _ := args["filter"].(map[string]interface{})
	return m
}

func orderByArg(args map[string]interface{}) []string {
	raw, _ := args["orderBy"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func customerFilterFrom(m map[string]interface{}) *filters.CustomerFilter {
	if m == nil {
		return nil
	}
	return &filters.CustomerFilter{
		Name:         optString(m, "name"),
		Email:        optString(m, "email"),
		CreatedAtGte: optTime(m, "createdAtGte"),
		CreatedAtLte: optTime(m, "createdAtLte"),
		PhonePattern: optString(m, "phonePattern"),
	}
}

func productFilterFrom(m map[string]interface{}) *filters.ProductFilter {
	if m == nil {
		return nil
	}
	return &filters.ProductFilter{
		Name:     optString(m, "name"),
		PriceGte: optDecimal(m, "priceGte"),
		PriceLte: optDecimal(m, "priceLte"),
		StockGte: optInt(m, "stockGte"),
		StockLte: optInt(m, "stockLte"),
		LowStock: optBool(m, "lowStock"),
	}
}

func orderFilterFrom(m map[string]interface{}) (*filters.OrderFilter, error) {
	if m == nil {
		return nil, nil
	}
	f := &filters.OrderFilter{
		TotalAmountGte: optDecimal(m, "totalAmountGte"),
		TotalAmountLte: optDecimal(m, "totalAmountLte"),
		OrderDateGte:   optTime(m, "orderDateGte"),
		OrderDateLte:   optTime(m, "orderDateLte"),
		CustomerName:   optString(m, "customerName"),
		ProductName:    optString(m, "productName"),
	}
	if raw := optString(m, "productId"); raw != nil {
		id, err := strconv.ParseUint(*raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid productId %q", *raw)
		}
		pid := uint(id)
		f.ProductID = &pid
	}
	return f, nil
}

func customerInputFrom(v interface{}) services.CustomerInput {
	m, _ := v.(map[string]interface{})
	in := services.CustomerInput{Phone: optString(m, "phone")}
	in.Name, _ = m["name"].(string)
	in.Email, _ = m["email"].(string)
	return in
}

func productInputFrom(v interface{}) services.ProductInput {
	m, _ := v.(map[string]interface{})
	in := services.ProductInput{Stock: optInt(m, "stock")}
	in.Name, _ = m["name"].(string)
	in.Price, _ = m["price"].(decimal.Decimal)
	return in
}

func orderInputFrom(v interface{}) services.OrderInput {
	m, _ := v.(map[string]interface{})
	in := services.OrderInput{OrderDate: optTime(m, "orderDate")}
	in.CustomerID, _ = m["customerId"].(string)
	raw, _ := m["productIds"].([]interface{})
	for _, id := range raw {
		if s, ok := id.(string); ok {
			in.ProductIDs = append(in.ProductIDs, s)
		}
	}
	return in
}
