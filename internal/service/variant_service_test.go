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

func newVariantService(t *testing.T, db *gorm.DB, fake *fakeRemote) VariantService {
	return NewVariantService(
		repository.NewVariantRepo(db), repository.NewProductRepo(db),
		db, newRemoteClient(t, fake), zap.NewNop(),
	)
}

func seedProduct(t *testing.T, db *gorm.DB, shopifyID *uint64) *model.Product {
	product := &model.Product{ShopifyProductID: shopifyID, Title: "Tee", Status: model.StatusActive}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedVariant(t *testing.T, db *gorm.DB, product *model.Product, shopifyID *uint64, qty int) *model.Variant {
	variant := &model.Variant{
		ProductID:        product.ID,
		ShopifyVariantID: shopifyID,
		Price:            decimal.RequireFromString("19.99"),
		InventoryQty:     qty,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}

const variantCreatedData = `{
	"productVariantCreate": {
		"productVariant": {"id": "gid://shopify/ProductVariant/201", "title": "Red", "price": "12.00"},
		"userErrors": []
	}
}`

func TestCreateVariantRequiresSyncedProduct(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	svc := newVariantService(t, db, fake)
	product := seedProduct(t, db, nil)

	_, err := svc.Create(product.ID, &CreateVariantRequest{Price: decimal.RequireFromString("12.00")})

	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)
	assert.Empty(t, fake.GraphQLOps, "no remote call before the precondition check")
}

func TestCreateVariantSyncsAndBackfills(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.handle("productVariantCreate", variantCreatedData)
	svc := newVariantService(t, db, fake)
	product := seedProduct(t, db, uint64ptr(100))

	variant, err := svc.Create(product.ID, &CreateVariantRequest{
		Option1: strptr("Red"),
		Price:   decimal.RequireFromString("12.00"),
	})
	require.NoError(t, err)

	require.NotNil(t, variant.ShopifyVariantID)
	assert.Equal(t, uint64(201), *variant.ShopifyVariantID)
}

func TestCreateVariantRollsBackOnRemoteFailure(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.failAll = true
	svc := newVariantService(t, db, fake)
	product := seedProduct(t, db, uint64ptr(100))

	_, err := svc.Create(product.ID, &CreateVariantRequest{Price: decimal.RequireFromString("12.00")})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Variant{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteVariantRemoteFailureIsNonFatal(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.failREST = true
	svc := newVariantService(t, db, fake)

	product := seedProduct(t, db, uint64ptr(100))
	variant := seedVariant(t, db, product, uint64ptr(200), 5)

	require.NoError(t, svc.Delete(variant.ID))
	assert.Equal(t, 1, fake.RESTCalls)

	var count int64
	require.NoError(t, db.Model(&model.Variant{}).Count(&count).Error)
	assert.Zero(t, count, "local delete proceeds even when the remote delete fails")
}

func TestUpdateInventoryOperations(t *testing.T) {
	noSync := false

	tests := []struct {
		name      string
		start     int
		operation string
		quantity  int
		want      int
		change    int
	}{
		{"set", 5, "set", 12, 12, 7},
		{"add", 5, "add", 3, 8, 3},
		{"subtract", 5, "subtract", 2, 3, -2},
		{"subtract floors at zero", 5, "subtract", 99, 0, -99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			svc := newVariantService(t, db, newFakeRemote(t))
			product := seedProduct(t, db, uint64ptr(100))
			variant := seedVariant(t, db, product, uint64ptr(200), tt.start)

			result, err := svc.UpdateInventory(variant.ID, &InventoryUpdateRequest{
				Quantity:      tt.quantity,
				Operation:     tt.operation,
				SyncToShopify: &noSync,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.start, result.OldQuantity)
			assert.Equal(t, tt.want, result.NewQuantity)
			assert.Equal(t, tt.change, result.Change)

			var stored model.Variant
			require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
			assert.Equal(t, tt.want, stored.InventoryQty)
		})
	}
}

func TestUpdateInventoryRejectsUnknownOperation(t *testing.T) {
	db := setupDB(t)
	svc := newVariantService(t, db, newFakeRemote(t))
	product := seedProduct(t, db, uint64ptr(100))
	variant := seedVariant(t, db, product, uint64ptr(200), 5)

	_, err := svc.UpdateInventory(variant.ID, &InventoryUpdateRequest{Quantity: 1, Operation: "increment"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateInventoryRemoteFailureIsNonFatal(t *testing.T) {
	db := setupDB(t)
	fake := newFakeRemote(t)
	fake.failAll = true
	svc := newVariantService(t, db, fake)
	product := seedProduct(t, db, uint64ptr(100))
	variant := seedVariant(t, db, product, uint64ptr(200), 5)

	result, err := svc.UpdateInventory(variant.ID, &InventoryUpdateRequest{Quantity: 9, Operation: "set"})
	require.NoError(t, err, "the local write is authoritative")
	assert.Equal(t, 9, result.NewQuantity)

	var stored model.Variant
	require.NoError(t, db.First(&stored, "id = ?", variant.ID).Error)
	assert.Equal(t, 9, stored.InventoryQty)
}
