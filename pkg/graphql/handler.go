package graphql

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/shashiranjanraj/crm/pkg/logger"
	"github.com/shashiranjanraj/crm/pkg/metrics"
)

// maxBodyBytes bounds a POSTed GraphQL request.
const maxBodyBytes = 1 << 20

// Request is a GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves schema over HTTP: POST with a JSON (or application/graphql)
// body, or GET with query, variables and operationName parameters.
// Mutations are only accepted over POST. Execution errors are reported in
// the response body with status 200.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		kind := operationKind(req.Query, req.OperationName)
		if r.Method == http.MethodGet && kind == ast.OperationTypeMutation {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, errMutationOverGET)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})

		metrics.RecordGraphQL(kind, result.HasErrors())
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Debug("graphql: errors",
				"operation", req.OperationName, "errors", result.Errors)
		}

		writeResult(w, http.StatusOK, result)
	}
}

func parseRequest(r *http.Request) (Request, error) {
	var req Request

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return req, errBadVariables
			}
		}
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return req, err
		}
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch ct {
		case "application/graphql":
			req.Query = string(body)
		case "application/json":
			if err := json.Unmarshal(body, &req); err != nil {
				return req, errBadBody
			}
		default:
			// Form-encodable types would let a cross-site form post a
			// mutation without a CORS preflight.
			return req, errContentType
		}
	default:
		return req, errMethod
	}

	if req.Query == "" {
		return req, errNoQuery
	}
	return req, nil
}

// operationKind returns the type of the operation a request selects:
// "query", "mutation" or "subscription". It returns "" when the document
// does not parse or names no single operation; execution reports why.
func operationKind(query, operationName string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return ""
	}

	var selected *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if selected != nil {
				return ""
			}
			selected = op
			continue
		}
		if op.Name != nil && op.Name.Value == operationName {
			selected = op
		}
	}
	if selected == nil {
		return ""
	}
	return selected.Operation
}

type requestError string

func (e requestError) Error() string { return string(e) }

const (
	errBadVariables requestError = "variables must be a JSON object"
	errBadBody      requestError = "request body must be JSON with a query field"
	errMethod       requestError = "only GET and POST are supported"
	errContentType  requestError = "Content-Type must be application/json or application/graphql"
	errNoQuery      requestError = "must provide query string"

	errMutationOverGET requestError = "Can only perform a mutation operation from a POST request."
)

func writeError(w http.ResponseWriter, status int, err error) {
	writeResult(w, status, &graphql.Result{
		Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError(err.Error())},
	})
}

func writeResult(w http.ResponseWriter, status int, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
