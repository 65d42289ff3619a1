package shopify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadProductImage(t *testing.T) {
	var uploadedFields map[string]string
	var uploadedFile []byte
	var mediaVars map[string]any

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/upload-target", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		uploadedFields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			uploadedFields[name] = values[0]
		}
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 64)
		n, _ := f.Read(buf)
		uploadedFile = buf[:n]
	})

	mux.HandleFunc("/admin/api/2025-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch {
		case strings.Contains(req.Query, "stagedUploadsCreate("):
			fmt.Fprintf(w, `{"data": {"stagedUploadsCreate": {
				"stagedTargets": [{
					"url": %q,
					"resourceUrl": "https://cdn.example.com/staged/cat.png",
					"parameters": [{"name": "key", "value": "staged/cat.png"}, {"name": "policy", "value": "signed"}]
				}],
				"userErrors": []
			}}}`, srv.URL+"/upload-target")
		case strings.Contains(req.Query, "productCreateMedia("):
			mediaVars = req.Variables
			w.Write([]byte(`{"data": {"productCreateMedia": {
				"media": [{"id": "gid://shopify/MediaImage/900", "image": {"url": "https://cdn.shopify.com/cat.png", "altText": "cat"}}],
				"mediaUserErrors": []
			}}}`))
		default:
			t.Fatalf("unexpected query: %s", req.Query)
		}
	})

	c := NewClient(Config{StoreDomain: srv.URL, AccessToken: "t", APIVersion: "2025-01"}, zap.NewNop())

	media, err := c.UploadProductImage(100, ImageFile{
		Name:        "cat.png",
		ContentType: "image/png",
		Size:        4,
		Content:     []byte("PNG!"),
	})
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/MediaImage/900", media.ID)
	assert.Equal(t, "https://cdn.shopify.com/cat.png", media.URL)

	// Signed parameters and the file bytes went to the staging target.
	assert.Equal(t, "staged/cat.png", uploadedFields["key"])
	assert.Equal(t, "signed", uploadedFields["policy"])
	assert.Equal(t, []byte("PNG!"), uploadedFile)

	// The media is attached by resource URL with the extension-less
	// filename as alt text.
	mediaInput := mediaVars["media"].([]any)[0].(map[string]any)
	assert.Equal(t, "https://cdn.example.com/staged/cat.png", mediaInput["originalSource"])
	assert.Equal(t, "cat", mediaInput["alt"])
}

func TestUploadProductImageStagedTargetFailure(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/upload-target", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte("signature mismatch"))
	})
	mux.HandleFunc("/admin/api/2025-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data": {"stagedUploadsCreate": {
			"stagedTargets": [{"url": %q, "resourceUrl": "", "parameters": []}],
			"userErrors": []
		}}}`, srv.URL+"/upload-target")
	})

	c := NewClient(Config{StoreDomain: srv.URL, AccessToken: "t", APIVersion: "2025-01"}, zap.NewNop())

	_, err := c.UploadProductImage(100, ImageFile{Name: "cat.png", ContentType: "image/png", Size: 4, Content: []byte("PNG!")})
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, 403, transport.Status)
	assert.Contains(t, transport.Body, "signature mismatch")
}

func TestUploadProductImageNoStagedTargets(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("stagedUploadsCreate", `{"stagedUploadsCreate": {"stagedTargets": [], "userErrors": []}}`)
	c := newTestClient(t, fake)

	_, err := c.UploadProductImage(100, ImageFile{Name: "cat.png"})
	var protocol *ProtocolError
	require.ErrorAs(t, err, &protocol)
}

func TestDeleteProductImageUserErrors(t *testing.T) {
	fake := newFakeShopify(t)
	fake.handle("productImageDelete", `{
		"productImageDelete": {"deletedImageId": null, "userErrors": [{"field": null, "message": "Image not found"}]}
	}`)
	c := newTestClient(t, fake)

	err := c.DeleteProductImage(900)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "Image not found")
}
