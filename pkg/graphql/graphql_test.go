package graphql

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := EncodeCursor(4)
	assert.Equal(t, "YXJyYXljb25uZWN0aW9uOjQ=", c)

	n, err := DecodeCursor(c)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = DecodeCursor("not-base64!")
	assert.Error(t, err)
	_, err = DecodeCursor("b3RoZXI6MQ==") // "other:1"
	assert.Error(t, err)
}

func TestCursorOffsetIsBounded(t *testing.T) {
	huge := base64.StdEncoding.EncodeToString([]byte("arrayconnection:9223372036854775807"))
	_, err := DecodeCursor(huge)
	assert.Error(t, err)

	_, err = WindowFromArgs(map[string]interface{}{"first": 1, "after": huge})
	assert.Error(t, err)

	_, err = DecodeCursor(EncodeCursor(math.MaxInt32 - 1))
	assert.NoError(t, err)
}

func TestWindowFromArgs(t *testing.T) {
	w, err := WindowFromArgs(map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, Window{}, w)

	w, err = WindowFromArgs(map[string]interface{}{"first": 500, "after": EncodeCursor(9)})
	require.NoError(t, err)
	assert.Equal(t, Window{Offset: 10, Limit: MaxPageSize}, w)

	w, err = WindowFromArgs(map[string]interface{}{"first": 0})
	require.NoError(t, err)
	assert.True(t, w.Empty)

	_, err = WindowFromArgs(map[string]interface{}{"first": -1})
	assert.Error(t, err)
}

func TestNewConnectionPageInfo(t *testing.T) {
	conn := NewConnection([]string{"c", "d"}, Window{Offset: 2, Limit: 2}, 5)

	require.Len(t, conn.Edges, 2)
	assert.Equal(t, EncodeCursor(2), conn.Edges[0].Cursor)
	assert.Equal(t, EncodeCursor(3), *conn.PageInfo.EndCursor)
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.EqualValues(t, 5, conn.TotalCount)

	empty := NewConnection([]string{}, Window{}, 0)
	assert.Nil(t, empty.PageInfo.StartCursor)
	assert.False(t, empty.PageInfo.HasNextPage)
}

func testSchema(t *testing.T) graphql.Schema {
	t.Helper()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type:    graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return "Hello, GraphQL!", nil },
			},
			"double": &graphql.Field{
				Type: Decimal,
				Args: graphql.FieldConfigArgument{"v": &graphql.ArgumentConfig{Type: graphql.NewNonNull(Decimal)}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Args["v"].(decimal.Decimal).Mul(decimal.NewFromInt(2)), nil
				},
			},
		},
	})
	schema, err := NewSchema(query, nil)
	require.NoError(t, err)
	return schema
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestDecimalScalar(t *testing.T) {
	schema := testSchema(t)

	for _, q := range []string{`{ double(v: "1.25") }`, `{ double(v: 1.25) }`} {
		res := graphql.Do(graphql.Params{Schema: schema, RequestString: q})
		require.Empty(t, res.Errors, q)
		assert.Equal(t, "2.50", res.Data.(map[string]interface{})["double"], q)
	}

	res := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  `query($v: Decimal!) { double(v: $v) }`,
		VariableValues: map[string]interface{}{"v": 3},
	})
	require.Empty(t, res.Errors)
	assert.Equal(t, "6.00", res.Data.(map[string]interface{})["double"])

	res = graphql.Do(graphql.Params{Schema: schema, RequestString: `{ double(v: "abc") }`})
	assert.NotEmpty(t, res.Errors)
}

func TestHandlerPOST(t *testing.T) {
	h := Handler(testSchema(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"hello": "Hello, GraphQL!"}, decode(t, rec)["data"])
}

func TestHandlerGETAndRawBody(t *testing.T) {
	h := Handler(testSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape("{ hello }"), nil))
	assert.Equal(t, map[string]interface{}{"hello": "Hello, GraphQL!"}, decode(t, rec)["data"])

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{ hello }"))
	req.Header.Set("Content-Type", "application/graphql")
	h.ServeHTTP(rec, req)
	assert.Equal(t, map[string]interface{}{"hello": "Hello, GraphQL!"}, decode(t, rec)["data"])
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	h := Handler(testSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["errors"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerRejectsFormEncodablePOST(t *testing.T) {
	var bumps int
	h := Handler(counterSchema(t, &bumps))

	for _, ct := range []string{"text/plain", "application/x-www-form-urlencoded", ""} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"mutation { bump }"}`))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, ct)
	}
	assert.Zero(t, bumps)
}

func TestHandlerReportsExecutionErrors(t *testing.T) {
	h := Handler(testSchema(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ missing }"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["errors"])
}

func counterSchema(t *testing.T, bumps *int) graphql.Schema {
	t.Helper()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"count": &graphql.Field{
				Type:    graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return *bumps, nil },
			},
		},
	})
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"bump": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					*bumps++
					return *bumps, nil
				},
			},
		},
	})
	schema, err := NewSchema(query, mutation)
	require.NoError(t, err)
	return schema
}

func TestHandlerRejectsMutationOverGET(t *testing.T) {
	var bumps int
	h := Handler(counterSchema(t, &bumps))

	for _, target := range []string{
		"/graphql?query=" + url.QueryEscape("mutation { bump }"),
		"/graphql?operationName=B&query=" + url.QueryEscape("query A { count } mutation B { bump }"),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, target)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		assert.NotEmpty(t, decode(t, rec)["errors"])
	}
	assert.Zero(t, bumps)

	rec := httptest.NewRecorder()
	target := "/graphql?operationName=A&query=" + url.QueryEscape("query A { count } mutation B { bump }")
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"count": float64(0)}, decode(t, rec)["data"])

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"mutation { bump }"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, bumps)
}

func TestOperationKind(t *testing.T) {
	assert.Equal(t, "query", operationKind("{ hello }", ""))
	assert.Equal(t, "mutation", operationKind("mutation M { bump }", ""))
	assert.Equal(t, "mutation", operationKind("query A { a } mutation B { b }", "B"))
	assert.Equal(t, "", operationKind("query A { a } mutation B { b }", ""))
	assert.Equal(t, "", operationKind("query A { a }", "Missing"))
	assert.Equal(t, "", operationKind("{ broken", ""))
}
