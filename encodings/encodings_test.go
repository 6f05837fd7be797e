package encodings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Raw", Raw.String())
	assert.Equal(t, "Tight", Tight.String())
	assert.Equal(t, "TightPng", TightPng.String())
	assert.Equal(t, "Unknown", Type(999).String())
}

func TestTypeValues(t *testing.T) {
	assert.Equal(t, Type(0), Raw)
	assert.Equal(t, Type(2), RRE)
	assert.Equal(t, Type(4), CoRRE)
	assert.Equal(t, Type(5), Hextile)
	assert.Equal(t, Type(16), ZRLE)
	assert.Equal(t, Type(17), ZYWRLE)
	assert.Equal(t, Type(-260), TightPng)
}
