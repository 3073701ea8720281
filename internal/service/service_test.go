package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "devworks-bootcamp", Slugify("Devworks Bootcamp"))
	assert.Equal(t, "ui-ux-academy", Slugify("UI/UX Academy"))
	assert.Equal(t, "modern-tech", Slugify("  Modern   Tech  "))
}

func TestRadiusRadians(t *testing.T) {
	assert.InDelta(t, 10.0/6378.0, RadiusRadians(10), 1e-9)
	assert.Zero(t, RadiusRadians(0))
}

func TestRoundCost(t *testing.T) {
	// Averages round up to the next multiple of ten.
	assert.Equal(t, 10010, RoundCost(10001))
	assert.Equal(t, 10000, RoundCost(10000))
	assert.Equal(t, 6670, RoundCost(6666.67))
	assert.Equal(t, 0, RoundCost(0))
}
