package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractID returns the numeric ID from a Shopify GID.
// Example: "gid://shopify/Product/123456" -> 123456.
// Malformed input yields 0.
func ExtractID(gid string) uint64 {
	parts := strings.Split(gid, "/")
	id, _ := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	return id
}

// GID builds a Shopify GID from a resource type and numeric ID.
// Example: ("Product", 123456) -> "gid://shopify/Product/123456".
func GID(resource string, id uint64) string {
	return fmt.Sprintf("gid://shopify/%s/%d", resource, id)
}
