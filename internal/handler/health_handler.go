package handler

import (
	"time"

	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db       *gorm.DB
	shopify  *shopify.Client
	products repository.ProductRepository
}

func NewHealthHandler(db *gorm.DB, client *shopify.Client, products repository.ProductRepository) *HealthHandler {
	return &HealthHandler{db: db, shopify: client, products: products}
}

func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "go-shopify-sync",
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthHandler) Detailed(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.pingDatabase(); err != nil {
		dbStatus = "unreachable"
	}

	shopifyStatus := "ok"
	if !h.shopify.ValidateCredentials() {
		shopifyStatus = "unauthorized"
	}

	total, _ := h.products.Count()
	synced, _ := h.products.CountSynced()

	status := "ok"
	if dbStatus != "ok" || shopifyStatus != "ok" {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks": fiber.Map{
			"database": dbStatus,
			"shopify":  shopifyStatus,
		},
		"stats": fiber.Map{
			"total_products":  total,
			"synced_products": synced,
		},
	})
}

func (h *HealthHandler) Database(c *fiber.Ctx) error {
	if err := h.pingDatabase(); err != nil {
		return c.Status(503).JSON(fiber.Map{"status": "unreachable", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *HealthHandler) Shopify(c *fiber.Ctx) error {
	if !h.shopify.ValidateCredentials() {
		return c.Status(503).JSON(fiber.Map{"status": "unauthorized"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *HealthHandler) pingDatabase() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
