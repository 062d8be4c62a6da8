package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/crm/app/models"
	"github.com/shashiranjanraj/crm/app/services"
)

// CustomerCreatedMessage is returned by createCustomer on success.
const CustomerCreatedMessage = "Customer created successfully"

type createCustomerPayload struct {
	Customer *models.Customer
	Message  string
}

type bulkCreateCustomersPayload struct {
	Customers []models.Customer
	Errors    []string
}

type createProductPayload struct {
	Product *models.Product
}

type createOrderPayload struct {
	Order *models.Order
}

type updateLowStockPayload struct {
	Products []models.Product
	Message  string
}

func (b *builder) mutation() *graphql.Object {
	nonNullList := func(t graphql.Type) *graphql.NonNull {
		return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
	}

	createCustomer := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: b.customerType},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})
	bulkCreate := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: nonNullList(b.customerType)},
			"errors":    &graphql.Field{Type: nonNullList(graphql.String)},
		},
	})
	createProduct := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: b.productType},
		},
	})
	createOrder := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{Type: b.orderType},
		},
	})
	restock := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateLowStockProductsPayload",
		Fields: graphql.Fields{
			"products": &graphql.Field{Type: nonNullList(b.productType)},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomer,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInput)},
				},
				Resolve: b.resolveCreateCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreate,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: nonNullList(customerInput)},
				},
				Resolve: b.resolveBulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type: createProduct,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: b.resolveCreateProduct,
			},
			"createOrder": &graphql.Field{
				Type: createOrder,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInput)},
				},
				Resolve: b.resolveCreateOrder,
			},
			"updateLowStockProducts": &graphql.Field{
				Type:    restock,
				Resolve: b.resolveUpdateLowStock,
			},
		},
	})
}

func (b *builder) resolveCreateCustomer(p graphql.ResolveParams) (interface{}, error) {
	customer, err := b.customerSvc.Create(p.Context, customerInputFrom(p.Args["input"]))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return createCustomerPayload{Customer: customer, Message: CustomerCreatedMessage}, nil
}

func (b *builder) resolveBulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["input"].([]interface{})
	inputs := make([]services.CustomerInput, 0, len(raw))
	for _, v := range raw {
		inputs = append(inputs, customerInputFrom(v))
	}

	created, errs := b.customerSvc.BulkCreate(p.Context, inputs)
	if errs == nil {
		errs = []string{}
	}
	return bulkCreateCustomersPayload{Customers: created, Errors: errs}, nil
}

func (b *builder) resolveCreateProduct(p graphql.ResolveParams) (interface{}, error) {
	product, err := b.productSvc.Create(p.Context, productInputFrom(p.Args["input"]))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return createProductPayload{Product: product}, nil
}

func (b *builder) resolveCreateOrder(p graphql.ResolveParams) (interface{}, error) {
	order, err := b.orderSvc.Create(p.Context, orderInputFrom(p.Args["input"]))
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	return createOrderPayload{Order: order}, nil
}

func (b *builder) resolveUpdateLowStock(p graphql.ResolveParams) (interface{}, error) {
	products, err := b.productSvc.RestockLowStock(p.Context)
	if err != nil {
		return nil, publicError(p.Context, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return updateLowStockPayload{Products: products, Message: services.RestockMessage(len(products))}, nil
}
