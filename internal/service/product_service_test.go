package service

import (
	"testing"

	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newProductService(t *testing.T, db *gorm.DB, fake *fakeRemote) ProductService {
	return NewProductService(
		repository.NewProductRepo(db), db, newRemoteClient(t, fake), newHub(t), zap.NewNop(),
	)
}

func TestCreateProductSyncsAndBackfills(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productCreate", productCreatedData)
	fake.handle("product", productFetchedData)
	svc := newProductService(t, db, fake)

	product, err := svc.Create(&CreateProductRequest{
		Title:  "Tee",
		Status: "active",
		Variants: []VariantInput{
			{Price: decimal.RequireFromString("19.99"), SKU: strptr("TEE-1"), InventoryQty: 5},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, product.ShopifyProductID)
	assert.Equal(t, uint64(100), *product.ShopifyProductID)

	require.Len(t, product.Variants, 1)
	require.NotNil(t, product.Variants[0].ShopifyVariantID)
	assert.Equal(t, uint64(200), *product.Variants[0].ShopifyVariantID)

	// The default variant was patched over REST.
	assert.Equal(t, 1, fake.RESTCalls)
}

func TestCreateProductDefaultsToDraft(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productCreate", productCreatedData)
	svc := newProductService(t, db, fake)

	product, err := svc.Create(&CreateProductRequest{Title: "Tee"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, product.Status)
}

func TestCreateProductRollsBackOnRemoteFailure(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.failAll = true
	svc := newProductService(t, db, fake)

	_, err := svc.Create(&CreateProductRequest{
		Title:    "Tee",
		Variants: []VariantInput{{Price: decimal.RequireFromString("19.99")}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Product{}).Count(&count).Error)
	assert.Zero(t, count, "local rows must roll back when the remote create fails")

	require.NoError(t, db.Model(&model.Variant{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupDB(t)
	svc := newProductService(t, db, newFakeRemote(t))

	_, err := svc.Create(&CreateProductRequest{})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.Create(&CreateProductRequest{
		Title:    "Tee",
		Variants: []VariantInput{{Price: decimal.RequireFromString("-1")}},
	})
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "price")
}

func TestUpdateProductPartialApply(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productUpdate", `{
		"productUpdate": {
			"product": {"id": "gid://shopify/Product/100", "title": "Tee v2", "status": "ACTIVE"},
			"userErrors": []
		}
	}`)
	svc := newProductService(t, db, fake)

	product := &model.Product{
		ShopifyProductID: uint64ptr(100),
		Title:            "Tee",
		Vendor:           strptr("Acme"),
		Status:           model.StatusActive,
	}
	require.NoError(t, db.Create(product).Error)

	updated, err := svc.Update(product.ID, &UpdateProductRequest{Title: strptr("Tee v2")})
	require.NoError(t, err)
	assert.Equal(t, "Tee v2", updated.Title)
	// Untouched fields survive a partial update.
	require.NotNil(t, updated.Vendor)
	assert.Equal(t, "Acme", *updated.Vendor)
}

func TestDeleteProductPropagatesRemoteFailure(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productDelete", `{
		"productDelete": {"deletedProductId": null, "userErrors": [{"field": null, "message": "Product does not exist"}]}
	}`)
	svc := newProductService(t, db, fake)

	product := &model.Product{ShopifyProductID: uint64ptr(100), Title: "Tee", Status: model.StatusDraft}
	require.NoError(t, db.Create(product).Error)

	require.Error(t, svc.Delete(product.ID))

	// The remote failure rolled the soft delete back.
	var count int64
	require.NoError(t, db.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productDelete", `{
		"productDelete": {"deletedProductId": "gid://shopify/Product/100", "userErrors": []}
	}`)
	svc := newProductService(t, db, fake)

	product := &model.Product{ShopifyProductID: uint64ptr(100), Title: "Tee", Status: model.StatusDraft}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, svc.Delete(product.ID))

	var count int64
	require.NoError(t, db.Model(&model.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	// The row survives as a tombstone.
	require.NoError(t, db.Unscoped().Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUnsyncedProductSkipsRemote(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	svc := newProductService(t, db, fake)

	product := &model.Product{Title: "Local only", Status: model.StatusDraft}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, svc.Delete(product.ID))
	assert.Empty(t, fake.GraphQLOps)
}
