package handler

import (
	"io"
	"strings"

	"go-shopify-sync/internal/service"
	"go-shopify-sync/internal/shopify"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageHandler struct {
	service service.ImageService
}

func NewImageHandler(s service.ImageService) *ImageHandler {
	return &ImageHandler{service: s}
}

func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "image file is required"})
	}
	if fileHeader.Size > maxImageSize {
		return c.Status(422).JSON(fiber.Map{"error": "image must not exceed 10 MB"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return c.Status(422).JSON(fiber.Map{"error": "image must be jpeg, png, gif or webp"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "failed to read upload"})
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "failed to read upload"})
	}

	image, err := h.service.Upload(productID, shopify.ImageFile{
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Image uploaded", "data": image})
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	imageID, err := parseUUID(c.Params("imageId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid image ID"})
	}

	if err := h.service.Delete(productID, imageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Image deleted"})
}
