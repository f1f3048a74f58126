package tagcolor_test

import (
	"errors"
	"testing"

	"taskboard/internal/tagcolor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Blue(t *testing.T) {
	colors, err := tagcolor.Derive("blue")
	require.NoError(t, err)

	assert.Equal(t, "bg-blue-100 dark:bg-opacity-75", colors.Color)
	assert.Equal(t, "text-blue-700", colors.TextColor)
}

func TestDerive_Deterministic(t *testing.T) {
	for _, swatch := range tagcolor.Palette() {
		first, err := tagcolor.Derive(swatch.ID)
		require.NoError(t, err)
		second, err := tagcolor.Derive(swatch.ID)
		require.NoError(t, err)

		if first != second {
			t.Errorf("Expected identical colors for %s, got %v and %v", swatch.ID, first, second)
		}
		if tagcolor.IDFor(first.Color) != swatch.ID {
			t.Errorf("Expected IDFor(%q) to be %s", first.Color, swatch.ID)
		}
	}
}

func TestDerive_NormalizesInput(t *testing.T) {
	colors, err := tagcolor.Derive("  Cyan ")
	require.NoError(t, err)
	assert.Equal(t, "text-cyan-700", colors.TextColor)
}

func TestDerive_UnknownColor(t *testing.T) {
	_, err := tagcolor.Derive("teal")
	if !errors.Is(err, tagcolor.ErrUnknownColor) {
		t.Errorf("Expected ErrUnknownColor, got %v", err)
	}
}

func TestPalette_ReturnsCopy(t *testing.T) {
	p := tagcolor.Palette()
	require.Len(t, p, 8)
	p[0].ID = "mutated"

	_, ok := tagcolor.Lookup("blue")
	assert.True(t, ok)
	assert.Equal(t, "blue", tagcolor.Palette()[0].ID)
}

func TestIDFor_Unknown(t *testing.T) {
	assert.Equal(t, "", tagcolor.IDFor("bg-black"))
}
