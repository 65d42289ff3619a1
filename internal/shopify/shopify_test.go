package shopify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// graphqlRequest is the decoded body of a captured GraphQL call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// fakeShopify routes GraphQL operations by mutation/query name and
// records every request it serves.
type fakeShopify struct {
	t *testing.T

	// operation name -> canned "data" payload (as JSON string)
	graphql map[string]string
	// method+path -> status code for REST calls (default 200)
	restStatus map[string]int

	GraphQLCalls []graphqlRequest
	RESTCalls    []string
}

func newFakeShopify(t *testing.T) *fakeShopify {
	return &fakeShopify{
		t:          t,
		graphql:    make(map[string]string),
		restStatus: make(map[string]int),
	}
}

func (f *fakeShopify) handle(operation, data string) {
	f.graphql[operation] = data
}

func (f *fakeShopify) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/graphql.json") {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Fatalf("malformed graphql request: %v", err)
		}
		f.GraphQLCalls = append(f.GraphQLCalls, req)

		for operation, data := range f.graphql {
			if strings.Contains(req.Query, operation+"(") {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"data":` + data + `}`))
				return
			}
		}
		f.t.Fatalf("no canned response for query: %s", req.Query)
		return
	}

	key := r.Method + " " + r.URL.Path
	f.RESTCalls = append(f.RESTCalls, key)
	for suffix, status := range f.restStatus {
		if strings.HasSuffix(key, suffix) {
			w.WriteHeader(status)
			w.Write([]byte(`{"errors":"canned failure"}`))
			return
		}
	}
	w.Write([]byte(`{"variant":{}}`))
}

func newTestClient(t *testing.T, fake *fakeShopify) *Client {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		StoreDomain: srv.URL,
		AccessToken: "test-token",
		APIVersion:  "2025-01",
	}, zap.NewNop())
}

func strptr(s string) *string { return &s }
