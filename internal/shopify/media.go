package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadProductImage runs the three-step staged upload protocol:
// create a staging target, upload the bytes, attach the resource as
// product media. The parent product must already be synced.
func (c *Client) UploadProductImage(productShopifyID uint64, file ImageFile) (*Media, error) {
	target, err := c.createStagedUpload(file)
	if err != nil {
		return nil, err
	}
	if err := c.uploadToStagedTarget(target, file); err != nil {
		return nil, err
	}
	return c.createProductMedia(productShopifyID, target.ResourceURL, file.Name)
}

const stagedUploadsCreateMutation = `
	mutation stagedUploadsCreate($input: [StagedUploadInput!]!) {
		stagedUploadsCreate(input: $input) {
			stagedTargets {
				resourceUrl
				url
				parameters {
					name
					value
				}
			}
			userErrors {
				field
				message
			}
		}
	}
`

func (c *Client) createStagedUpload(file ImageFile) (StagedTarget, error) {
	data, err := c.Query(stagedUploadsCreateMutation, map[string]any{
		"input": []map[string]any{{
			"filename":   file.Name,
			"mimeType":   file.ContentType,
			"fileSize":   fmt.Sprintf("%d", file.Size),
			"resource":   "IMAGE",
			"httpMethod": "POST",
		}},
	})
	if err != nil {
		return StagedTarget{}, err
	}

	var payload struct {
		StagedUploadsCreate struct {
			StagedTargets []StagedTarget `json:"stagedTargets"`
			UserErrors    []UserError    `json:"userErrors"`
		} `json:"stagedUploadsCreate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return StagedTarget{}, err
	}
	if err := validationError(payload.StagedUploadsCreate.UserErrors); err != nil {
		return StagedTarget{}, err
	}
	if len(payload.StagedUploadsCreate.StagedTargets) == 0 {
		return StagedTarget{}, &ProtocolError{Op: "staged targets returned from stagedUploadsCreate"}
	}
	return payload.StagedUploadsCreate.StagedTargets[0], nil
}

// uploadToStagedTarget submits the signed form parameters plus the file
// bytes as multipart form data to the staging URL.
func (c *Client) uploadToStagedTarget(target StagedTarget, file ImageFile) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, param := range target.Parameters {
		if err := form.WriteField(param.Name, param.Value); err != nil {
			return err
		}
	}
	part, err := form.CreateFormFile("file", file.Name)
	if err != nil {
		return err
	}
	if _, err := part.Write(file.Content); err != nil {
		return err
	}
	if err := form.Close(); err != nil {
		return err
	}

	resp, err := c.http.Post(target.URL, form.FormDataContentType(), &buf)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &TransportError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

const productCreateMediaMutation = `
	mutation productCreateMedia($productId: ID!, $media: [CreateMediaInput!]!) {
		productCreateMedia(productId: $productId, media: $media) {
			media {
				... on MediaImage {
					id
					image {
						url
						altText
					}
				}
			}
			mediaUserErrors {
				field
				message
			}
			product {
				id
			}
		}
	}
`

func (c *Client) createProductMedia(productShopifyID uint64, resourceURL, filename string) (*Media, error) {
	alt := strings.TrimSuffix(filename, filepath.Ext(filename))

	data, err := c.Query(productCreateMediaMutation, map[string]any{
		"productId": GID("Product", productShopifyID),
		"media": []map[string]any{{
			"originalSource":   resourceURL,
			"mediaContentType": "IMAGE",
			"alt":              alt,
		}},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ProductCreateMedia struct {
			Media []struct {
				ID    string `json:"id"`
				Image struct {
					URL     string `json:"url"`
					AltText string `json:"altText"`
				} `json:"image"`
			} `json:"media"`
			MediaUserErrors []UserError `json:"mediaUserErrors"`
		} `json:"productCreateMedia"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if err := validationError(payload.ProductCreateMedia.MediaUserErrors); err != nil {
		return nil, err
	}
	if len(payload.ProductCreateMedia.Media) == 0 {
		return nil, &ProtocolError{Op: "media returned from productCreateMedia"}
	}

	media := payload.ProductCreateMedia.Media[0]
	url := media.Image.URL
	if url == "" {
		url = resourceURL
	}
	return &Media{ID: media.ID, URL: url, AltText: media.Image.AltText}, nil
}

const productImageDeleteMutation = `
	mutation productImageDelete($input: ProductImageDeleteInput!) {
		productImageDelete(input: $input) {
			deletedImageId
			userErrors {
				field
				message
			}
		}
	}
`

// DeleteProductImage removes a remote product image.
func (c *Client) DeleteProductImage(imageID uint64) error {
	data, err := c.Query(productImageDeleteMutation, map[string]any{
		"input": map[string]any{"id": GID("ProductImage", imageID)},
	})
	if err != nil {
		return err
	}

	var payload struct {
		ProductImageDelete struct {
			DeletedImageID *string     `json:"deletedImageId"`
			UserErrors     []UserError `json:"userErrors"`
		} `json:"productImageDelete"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return validationError(payload.ProductImageDelete.UserErrors)
}
