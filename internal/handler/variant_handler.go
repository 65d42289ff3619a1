package handler

import (
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VariantHandler struct {
	service service.VariantService
}

func NewVariantHandler(s service.VariantService) *VariantHandler {
	return &VariantHandler{service: s}
}

func (h *VariantHandler) ListForProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	variants, err := h.service.ForProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": variants})
}

func (h *VariantHandler) List(c *fiber.Ctx) error {
	filter := repository.VariantFilter{
		Search: c.Query("q"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if min := c.Query("min_price"); min != "" {
		filter.MinPrice = &min
	}
	if max := c.Query("max_price"); max != "" {
		filter.MaxPrice = &max
	}

	variants, total, err := h.service.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": variants, "total": total})
}

func (h *VariantHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	variant, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": variant})
}

func (h *VariantHandler) Create(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.CreateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	variant, err := h.service.Create(productID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Variant created", "data": variant})
}

func (h *VariantHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	var req service.UpdateVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	variant, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Variant updated", "data": variant})
}

func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Variant deleted"})
}

func (h *VariantHandler) UpdateInventory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	var req service.InventoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.UpdateInventory(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory updated", "data": result})
}
