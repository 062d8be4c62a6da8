package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/crm/app/repositories"
	gql "github.com/shashiranjanraj/crm/pkg/graphql"
)

func (b *builder) query() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"allCustomers": &graphql.Field{
				Type: graphql.NewNonNull(gql.ConnectionType("Customer", b.customerType)),
				Args: gql.ConnectionArgs(graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: customerFilterInput},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(customerOrderEnum))},
				}),
				Resolve: b.resolveAllCustomers,
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewNonNull(gql.ConnectionType("Product", b.productType)),
				Args: gql.ConnectionArgs(graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: productFilterInput},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(productOrderEnum))},
				}),
				Resolve: b.resolveAllProducts,
			},
			"allOrders": &graphql.Field{
				Type: graphql.NewNonNull(gql.ConnectionType("Order", b.orderType)),
				Args: gql.ConnectionArgs(graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: orderFilterInput},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(orderOrderEnum))},
				}),
				Resolve: b.resolveAllOrders,
			},
		},
	})
}

// pageFor turns a connection window into a repository page. `first: 0`
// still runs the query so totalCount is populated.
func pageFor(w gql.Window) repositories.Page {
	if w.Empty {
		return repositories.Page{Offset: w.Offset, Limit: 1}
	}
	return repositories.Page{Offset: w.Offset, Limit: w.Limit}
}

func connection[T any](rows []T, w gql.Window, total int64) *gql.Connection {
	if w.Empty {
		rows = rows[:0]
	}
	return gql.NewConnection(rows, w, total)
}

func (b *builder) resolveAllCustomers(p graphql.ResolveParams) (interface{}, error) {
	w, err := gql.WindowFromArgs(p.Args)
	if err != nil {
		return nil, err
	}
	f := customerFilterFrom(filterArg(p.Args))

	rows, total, err := b.customers.List(p.Context, f, orderByArg(p.Args), pageFor(w))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return connection(rows, w, total), nil
}

func (b *builder) resolveAllProducts(p graphql.ResolveParams) (interface{}, error) {
	w, err := gql.WindowFromArgs(p.Args)
	if err != nil {
		return nil, err
	}
	f := productFilterFrom(filterArg(p.Args))

	rows, total, err := b.products.List(p.Context, f, orderByArg(p.Args), pageFor(w))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return connection(rows, w, total), nil
}

func (b *builder) resolveAllOrders(p graphql.ResolveParams) (interface{}, error) {
	w, err := gql.WindowFromArgs(p.Args)
	if err != nil {
		return nil, err
	}
	f, err := orderFilterFrom(filterArg(p.Args))
	if err != nil {
		return nil, err
	}

	rows, total, err := b.orders.List(p.Context, f, orderByArg(p.Args), pageFor(w))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return connection(rows, w, total), nil
}
