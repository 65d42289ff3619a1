package handler

import (
	"go-shopify-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SyncHandler struct {
	sync    service.SyncService
	imports service.ImportService
}

func NewSyncHandler(sync service.SyncService, imports service.ImportService) *SyncHandler {
	return &SyncHandler{sync: sync, imports: imports}
}

func (h *SyncHandler) Import(c *fiber.Ctx) error {
	first := c.QueryInt("first", 50)
	var cursor *string
	if after := c.Query("after"); after != "" {
		cursor = &after
	}

	result, err := h.imports.Import(first, cursor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Import completed", "data": result})
}

func (h *SyncHandler) Export(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var body struct {
		ForceCreate bool `json:"force_create"`
	}
	// Body is optional for export.
	_ = c.BodyParser(&body)

	result, err := h.sync.ExportProduct(id, body.ForceCreate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product exported", "data": result})
}

// ExportBulk is accepted-only for now, matching the bulk product
// endpoints.
func (h *SyncHandler) ExportBulk(c *fiber.Ctx) error {
	var body struct {
		ProductIDs []uuid.UUID `json:"product_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	return c.Status(202).JSON(fiber.Map{
		"message":   "Bulk export accepted",
		"job_id":    uuid.New().String(),
		"processed": len(body.ProductIDs),
	})
}

func (h *SyncHandler) Status(c *fiber.Ctx) error {
	status, err := h.sync.Status()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": status})
}

func (h *SyncHandler) Validate(c *fiber.Ctx) error {
	valid := h.sync.ValidateCredentials()
	if !valid {
		return c.Status(401).JSON(fiber.Map{"valid": false, "message": "Shopify credentials are invalid"})
	}
	return c.JSON(fiber.Map{"valid": true, "message": "Shopify credentials are valid"})
}

// Conflicts will compare local and remote timestamps once remote
// change tracking lands; until then the list is always empty.
func (h *SyncHandler) Conflicts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": []any{}, "total": 0})
}
