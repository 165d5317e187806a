package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedText_In(t *testing.T) {
	text := LocalizedText{EN: "Plate Carrier", KA: "პლეიტკერიერი"}
	assert.Equal(t, "პლეიტკერიერი", text.In("ka"))
	assert.Equal(t, "Plate Carrier", text.In("en"))

	// Missing Georgian falls back to English.
	missing := LocalizedText{EN: "Combat Boots"}
	assert.Equal(t, "Combat Boots", missing.In("ka"))
	assert.Equal(t, "Combat Boots", missing.In("en"))
}
