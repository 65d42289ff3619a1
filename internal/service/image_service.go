package service

import (
	"go-shopify-sync/internal/model"
	"go-shopify-sync/internal/repository"
	"go-shopify-sync/internal/shopify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImageService interface {
	Upload(productID uuid.UUID, file shopify.ImageFile) (*model.ProductImage, error)
	Delete(productID, imageID uuid.UUID) error
}

type imageService struct {
	images   repository.ImageRepository
	products repository.ProductRepository
	shopify  *shopify.Client
	log      *zap.Logger
}

func NewImageService(images repository.ImageRepository, products repository.ProductRepository, client *shopify.Client, log *zap.Logger) ImageService {
	return &imageService{
		images:   images,
		products: products,
		shopify:  client,
		log:      log,
	}
}

// Upload pushes the image through the staged upload protocol and stores
// the resulting media ID and served URL locally. The product must
// already have a Shopify counterpart; that is checked before any remote
// call is made.
func (s *imageService) Upload(productID uuid.UUID, file shopify.ImageFile) (*model.ProductImage, error) {
	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Synced() {
		return nil, &PreconditionError{Message: "product must be synced to Shopify first before uploading images"}
	}

	media, err := s.shopify.UploadProductImage(*product.ShopifyProductID, file)
	if err != nil {
		return nil, err
	}

	mediaID := shopify.ExtractID(media.ID)
	image := &model.ProductImage{
		ProductID:      product.ID,
		ShopifyImageID: &mediaID,
		Path:           media.URL,
	}
	if err := s.images.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// Delete removes the image row; the remote deletion is best-effort and
// a failure there is logged. The local store is authoritative for
// "this image no longer belongs here".
func (s *imageService) Delete(productID, imageID uuid.UUID) error {
	image, err := s.images.FindByID(imageID)
	if err != nil {
		return err
	}
	if image.ProductID != productID {
		return &PreconditionError{Message: "image does not belong to this product"}
	}

	if image.ShopifyImageID != nil {
		if err := s.shopify.DeleteProductImage(*image.ShopifyImageID); err != nil {
			s.log.Error("failed to delete image from Shopify",
				zap.String("image_id", image.ID.String()),
				zap.Error(err))
		}
	}

	return s.images.Delete(image.ID)
}
