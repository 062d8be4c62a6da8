package graphql

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"
)

// MaxPageSize caps the `first` argument of every connection.
const MaxPageSize = 100

const cursorPrefix = "arrayconnection:"

// EncodeCursor returns the opaque cursor for the row at offset.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	s, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= math.MaxInt32 {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	return n, nil
}

// ConnectionArgs returns the `first` and `after` arguments merged with
// extra.
func ConnectionArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{Type: graphql.Int},
		"after": &graphql.ArgumentConfig{Type: graphql.String},
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

// Window is the slice of rows a connection request selects. Limit 0 means
// every remaining row; Empty is set for `first: 0`.
type Window struct {
	Offset int
	Limit  int
	Empty  bool
}

// WindowFromArgs reads `first` and `after`. first is capped at MaxPageSize;
// a negative first or malformed cursor is an error.
func WindowFromArgs(args map[string]interface{}) (Window, error) {
	var w Window

	if after, ok := args["after"].(string); ok && after != "" {
		n, err := DecodeCursor(after)
		if err != nil {
			return w, err
		}
		w.Offset = n + 1
	}

	if first, ok := args["first"].(int); ok {
		if first < 0 {
			return w, fmt.Errorf("first must be non-negative, got %d", first)
		}
		if first > MaxPageSize {
			first = MaxPageSize
		}
		w.Limit = first
		w.Empty = first == 0
	}
	return w, nil
}

// PageInfo mirrors the Relay PageInfo type.
type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

type Edge struct {
	Cursor string
	Node   interface{}
}

// Connection is the resolved value of a connection field.
type Connection struct {
	Edges      []Edge
	PageInfo   PageInfo
	TotalCount int64
}

// NewConnection wraps one page of rows fetched at w.Offset out of total.
func NewConnection[T any](rows []T, w Window, total int64) *Connection {
	conn := &Connection{Edges: make([]Edge, 0, len(rows)), TotalCount: total}
	for i := range rows {
		conn.Edges = append(conn.Edges, Edge{Cursor: EncodeCursor(w.Offset + i), Node: &rows[i]})
	}

	if n := len(conn.Edges); n > 0 {
		start, end := conn.Edges[0].Cursor, conn.Edges[n-1].Cursor
		conn.PageInfo.StartCursor = &start
		conn.PageInfo.EndCursor = &end
	}
	conn.PageInfo.HasPreviousPage = w.Offset > 0
	conn.PageInfo.HasNextPage = int64(w.Offset+len(rows)) < total
	return conn
}

var PageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"startCursor":     &graphql.Field{Type: graphql.String},
		"endCursor":       &graphql.Field{Type: graphql.String},
	},
})

// ConnectionType builds `<Name>Connection` and `<Name>Edge` for node.
func ConnectionType(name string, node graphql.Output) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"node":   &graphql.Field{Type: node},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"edges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edge)))},
			"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(PageInfoType)},
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
}
