package handler

import (
	"go-shopify-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	service service.SearchService
}

func NewSearchHandler(s service.SearchService) *SearchHandler {
	return &SearchHandler{service: s}
}

func (h *SearchHandler) Products(c *fiber.Ctx) error {
	req := service.ProductSearchRequest{
		Query:       c.Query("q"),
		Status:      c.Query("status"),
		Vendor:      c.Query("vendor"),
		ProductType: c.Query("product_type"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Limit:       c.QueryInt("limit", 20),
		Offset:      c.QueryInt("offset", 0),
	}
	if min := c.Query("min_price"); min != "" {
		req.MinPrice = &min
	}
	if max := c.Query("max_price"); max != "" {
		req.MaxPrice = &max
	}
	if has := c.Query("has_shopify_id"); has != "" {
		v := has == "true" || has == "1"
		req.HasShopifyID = &v
	}

	products, total, err := h.service.Products(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": products, "total": total})
}

func (h *SearchHandler) Variants(c *fiber.Ctx) error {
	req := service.VariantSearchRequest{
		Query:  c.Query("q"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if id := c.Query("product_id"); id != "" {
		productID, err := parseUUID(id)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		req.ProductID = &productID
	}
	if min := c.Query("min_price"); min != "" {
		req.MinPrice = &min
	}
	if max := c.Query("max_price"); max != "" {
		req.MaxPrice = &max
	}

	variants, total, err := h.service.Variants(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": variants, "total": total})
}

func (h *SearchHandler) Suggestions(c *fiber.Ctx) error {
	suggestions, err := h.service.Suggestions(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": suggestions})
}

func (h *SearchHandler) Filters(c *fiber.Ctx) error {
	filters, err := h.service.Filters()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": filters})
}
