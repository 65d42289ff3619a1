package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/shopify"
	"go-shopify-sync/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Variant{}, &model.ProductImage{}, &model.User{}))
	return db
}

func newHub(t *testing.T) *ws.Hub {
	hub := ws.NewHub(zap.NewNop())
	go hub.Run()
	return hub
}

// fakeRemote is a scripted Shopify endpoint keyed by GraphQL operation
// name, with a switchable REST failure.
type fakeRemote struct {
	t *testing.T

	graphql  map[string]string
	failREST bool
	failAll  bool

	GraphQLOps []string
	RESTCalls  int
}

func newFakeRemote(t *testing.T) *fakeRemote {
	return &fakeRemote{t: t, graphql: make(map[string]string)}
}

func (f *fakeRemote) handle(operation, data string) {
	f.graphql[operation] = data
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.failAll {
		w.WriteHeader(500)
		w.Write([]byte(`{"errors":"scripted outage"}`))
		return
	}

	if strings.HasSuffix(r.URL.Path, "/graphql.json") {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Fatalf("malformed graphql request: %v", err)
		}
		for operation, data := range f.graphql {
			if strings.Contains(req.Query, operation+"(") {
				f.GraphQLOps = append(f.GraphQLOps, operation)
				w.Write([]byte(`{"data":` + data + `}`))
				return
			}
		}
		f.t.Fatalf("no canned response for query: %s", req.Query)
		return
	}

	f.RESTCalls++
	if f.failREST {
		w.WriteHeader(500)
		w.Write([]byte(`{"errors":"scripted outage"}`))
		return
	}
	w.Write([]byte(`{"variant":{}}`))
}

func newRemoteClient(t *testing.T, fake *fakeRemote) *shopify.Client {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return shopify.NewClient(shopify.Config{
		StoreDomain: srv.URL,
		AccessToken: "test-token",
		APIVersion:  "2025-01",
	}, zap.NewNop())
}

func strptr(s string) *string { return &s }

func uint64ptr(v uint64) *uint64 { return &v }

const productCreatedData = `{
	"productCreate": {
		"product": {
			"id": "gid://shopify/Product/100",
			"title": "Tee",
			"status": "ACTIVE",
			"variants": {"edges": [{"node": {
				"id": "gid://shopify/ProductVariant/200",
				"title": "Default Title",
				"price": "0.00"
			}}]}
		},
		"userErrors": []
	}
}`

const productFetchedData = `{
	"product": {
		"id": "gid://shopify/Product/100",
		"title": "Tee",
		"status": "ACTIVE",
		"variants": {"edges": [{"node": {
			"id": "gid://shopify/ProductVariant/200",
			"title": "Default Title",
			"sku": "TEE-1",
			"price": "19.99",
			"inventoryQuantity": 5
		}}]}
	}
}`
