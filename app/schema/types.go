package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/app/models"
	gql "github.com/shashiranjanraj/crm/pkg/graphql"
)

func (b *builder) buildTypes() {
	b.productType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.Field{Type: graphql.NewNonNull(gql.Decimal)},
			"stock": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	// Customer and Order refer to each other, so Customer's fields are
	// resolved lazily.
	b.customerType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"phone":     &graphql.Field{Type: graphql.String},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"orders": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.orderType))),
					Resolve: b.resolveCustomerOrders,
				},
			}
		}),
	})

	b.orderType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"customer":    &graphql.Field{Type: graphql.NewNonNull(b.customerType)},
			"products":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.productType)))},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(gql.Decimal)},
		},
	})
}

func (b *builder) resolveCustomerOrders(p graphql.ResolveParams) (interface{}, error) {
	var id uint
	switch c := p.Source.(type) {
	case *models.Customer:
		id = c.ID
	case models.Customer:
		id = c.ID
	default:
		return nil, fmt.Errorf("orders: unexpected source %T", p.Source)
	}

	orders, err := b.orders.ForCustomer(p.Context, id)
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return orders, nil
}

// sortEnum exposes a Sorting as a GraphQL enum, so unknown names fail
// query validation.
func sortEnum(name string, s filters.Sorting) *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, v := range s.Values() {
		values[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   name,
		Values: values,
	})
}

var (
	customerOrderEnum = sortEnum("CustomerOrder", filters.CustomerSorting)
	productOrderEnum  = sortEnum("ProductOrder", filters.ProductSorting)
	orderOrderEnum    = sortEnum("OrderOrder", filters.OrderSorting)
)
