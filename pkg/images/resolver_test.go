package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAcceptsRealImageURLs(t *testing.T) {
	cases := []string{
		"https://example.com/photos/concert.jpg",
		"https://example.com/photos/concert.JPEG",
		"http://cdn.example.org/a/b/c.webp",
		"https://images.unsplash.com/photo-123456",
		"https://i.imgur.com/abc123",
		"https://res.cloudinary.com/demo/image/upload/sample",
		"https://picsum.photos/800/400",
	}

	for _, candidate := range cases {
		assert.Equal(t, candidate, Resolve(candidate, "Music", "Jazz Night"), candidate)
	}
}

func TestResolveFallsBackToCategoryPlaceholder(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not a url at all",
		"ftp://example.com/image.jpg",
		"https://example.com/article/how-to-photograph-events",
		"IMG_1234.jpg", // bare filename, no scheme or host
	}

	expected := CategoryPlaceholder("Music", "Jazz Night")
	for _, candidate := range cases {
		assert.Equal(t, expected, Resolve(candidate, "Music", "Jazz Night"), candidate)
	}
}

func TestResolveRejectsFilenameSmuggledAsPlaceholderText(t *testing.T) {
	cases := []string{
		"https://placehold.co/800x400/random?text=IMG_1234.jpg",
		"https://placehold.co/800x400/random?text=WhatsApp%20Image%202024-01-01",
		"https://via.placeholder.com/800x400?text=party.png",
	}

	expected := CategoryPlaceholder("Sports", "Marathon")
	for _, candidate := range cases {
		assert.Equal(t, expected, Resolve(candidate, "Sports", "Marathon"), candidate)
	}
}

func TestResolvePlaceholderEmbedsEncodedTitle(t *testing.T) {
	url := Resolve("", "Technology", "Go & Friends Meetup")

	assert.Contains(t, url, "purple/white")
	assert.Contains(t, url, "text=Go+%26+Friends+Meetup")
}

func TestResolveUnknownCategoryUsesOtherColors(t *testing.T) {
	assert.Equal(t,
		CategoryPlaceholder("Other", "Mystery"),
		CategoryPlaceholder("Underwater Basket Weaving", "Mystery"))
	assert.Contains(t, CategoryPlaceholder("Other", "Mystery"), "blue/white")
}

func TestResolveIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"garbage",
		"https://example.com/pic.png",
		"https://placehold.co/800x400/random?text=IMG_1234.jpg",
		"https://images.unsplash.com/photo-9",
	}

	for _, candidate := range inputs {
		once := Resolve(candidate, "Food", "Street Food Fair")
		twice := Resolve(once, "Food", "Street Food Fair")
		assert.Equal(t, once, twice, candidate)
	}
}

func TestResolveEmptyTitleDefaults(t *testing.T) {
	assert.Contains(t, Resolve("", "Music", ""), "text=Event")
}
