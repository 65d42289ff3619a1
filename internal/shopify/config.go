package shopify

import "os"

// Config holds the Shopify Admin API connection settings. It is passed
// explicitly into NewClient; there is no package-level state.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "acme.myshopify.com".
	// A full URL (with scheme) is also accepted.
	StoreDomain string
	AccessToken string
	APIVersion  string
}

const defaultAPIVersion = "2025-01"

// ConfigFromEnv builds a Config from SHOPIFY_DOMAIN, SHOPIFY_ACCESS_TOKEN
// and SHOPIFY_API_VERSION.
func ConfigFromEnv() Config {
	version := os.Getenv("SHOPIFY_API_VERSION")
	if version == "" {
		version = defaultAPIVersion
	}
	return Config{
		StoreDomain: os.Getenv("SHOPIFY_DOMAIN"),
		AccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		APIVersion:  version,
	}
}
