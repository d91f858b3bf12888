package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsoluteURL(t *testing.T) {
	abs, err := AbsoluteURL("https://shop.example.com", "/en/cubans/cohiba-p1070/")
	assert.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/en/cubans/cohiba-p1070/", abs)

	// Already absolute hrefs pass through unchanged
	abs, err = AbsoluteURL("https://shop.example.com", "https://cdn.example.com/img.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img.png", abs)

	_, err = AbsoluteURL("https://shop.example.com", "http://bad url with spaces")
	assert.Error(t, err)
}
