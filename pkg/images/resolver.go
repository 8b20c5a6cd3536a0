// Package images guarantees that every event handed to a client carries a
// resolvable image URL. Anything missing, malformed or not recognizably an
// image is replaced by a deterministic category placeholder.
package images

import (
	"fmt"
	"net/url"
	"strings"
)

const placeholderBase = "https://placehold.co/800x400"

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// Hosts that serve images without an extension in the path. placehold.co is
// on the list on purpose: it keeps Resolve idempotent, since generated
// placeholders pass through unchanged.
var imageHosts = []string{
	"placehold.co",
	"placeholder.com",
	"picsum.photos",
	"cloudinary.com",
	"imgur.com",
	"unsplash.com",
}

// Background/foreground per category; unknown categories get the "Other" look.
var categoryColors = map[string]string{
	"Music":      "coral/white",
	"Education":  "lightblue/black",
	"Sports":     "orange/white",
	"Technology": "purple/white",
	"Art":        "pink/white",
	"Food":       "green/white",
	"Business":   "gray/white",
	"Other":      "blue/white",
}

// Resolve returns candidate when it is a plausible image URL, otherwise a
// category placeholder embedding the percent-encoded title. The function is
// pure and idempotent.
func Resolve(candidate, category, title string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return CategoryPlaceholder(category, title)
	}

	u, err := url.Parse(candidate)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return CategoryPlaceholder(category, title)
	}

	// A placeholder-service URL whose display text is itself a raw filename
	// (IMG_1234.jpg, WhatsApp exports) is a mangled upload, not an image.
	if isPlaceholderService(u.Host) && textLooksLikeFilename(u.Query().Get("text")) {
		return CategoryPlaceholder(category, title)
	}

	if hasImageExtension(u.Path) || isImageHost(u.Host) {
		return candidate
	}

	return CategoryPlaceholder(category, title)
}

// CategoryPlaceholder builds the deterministic fallback URL for a category.
func CategoryPlaceholder(category, title string) string {
	colors, ok := categoryColors[category]
	if !ok {
		colors = categoryColors["Other"]
	}
	if title == "" {
		title = "Event"
	}
	return fmt.Sprintf("%s/%s?text=%s", placeholderBase, colors, url.QueryEscape(title))
}

func hasImageExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isImageHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range imageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func isPlaceholderService(host string) bool {
	host = strings.ToLower(host)
	return host == "placehold.co" || strings.HasSuffix(host, ".placehold.co") ||
		host == "placeholder.com" || strings.HasSuffix(host, ".placeholder.com")
}

func textLooksLikeFilename(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	if strings.HasPrefix(text, "IMG_") || strings.HasPrefix(lower, "whatsapp") {
		return true
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
