package filters

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const descSuffix = "_DESC"

// Sorting maps enum names to columns of one table. Each name N is exposed
// as N (ascending) and N_DESC (descending).
type Sorting struct {
	Table   string
	Columns map[string]string
}

var (
	CustomerSorting = Sorting{Table: "customers", Columns: map[string]string{
		"NAME":       "name",
		"EMAIL":      "email",
		"CREATED_AT": "created_at",
		"ID":         "id",
	}}

	ProductSorting = Sorting{Table: "products", Columns: map[string]string{
		"NAME":  "name",
		"PRICE": "price",
		"STOCK": "stock",
		"ID":    "id",
	}}

	OrderSorting = Sorting{Table: "orders", Columns: map[string]string{
		"ORDER_DATE":   "order_date",
		"TOTAL_AMOUNT": "total_amount",
		"ID":           "id",
	}}
)

// Values lists every accepted enum name, sorted.
func (s Sorting) Values() []string {
	out := make([]string, 0, len(s.Columns)*2)
	for name := range s.Columns {
		out = append(out, name, name+descSuffix)
	}
	sort.Strings(out)
	return out
}

func (s Sorting) column(key string) (clause.OrderByColumn, error) {
	name, desc := key, false
	if _, ok := s.Columns[name]; !ok && strings.HasSuffix(key, descSuffix) {
		name, desc = strings.TrimSuffix(key, descSuffix), true
	}
	col, ok := s.Columns[name]
	if !ok {
		return clause.OrderByColumn{}, fmt.Errorf("filters: unknown %s ordering %q", s.Table, key)
	}
	return clause.OrderByColumn{Column: clause.Column{Table: s.Table, Name: col}, Desc: desc}, nil
}

// Scope orders by keys in sequence and then by id ascending, so pages are
// stable. An unknown key is an error.
func (s Sorting) Scope(keys []string) (func(*gorm.DB) *gorm.DB, error) {
	cols := make([]clause.OrderByColumn, 0, len(keys)+1)
	for _, key := range keys {
		col, err := s.column(key)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	cols = append(cols, clause.OrderByColumn{Column: clause.Column{Table: s.Table, Name: "id"}})

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderBy{Columns: cols})
	}, nil
}
