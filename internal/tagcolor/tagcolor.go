// Package tagcolor maps palette identifiers to the class tokens stored on tag
// rows. Tokens are derived once, at tag create/update time.
package tagcolor

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownColor = errors.New("unknown tag color")

// DefaultID is the palette id preselected for new tags.
const DefaultID = "blue"

type Swatch struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Colors struct {
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
}

var palette = []Swatch{
	{ID: "blue", Name: "Blue", Value: "bg-blue-500"},
	{ID: "green", Name: "Green", Value: "bg-green-500"},
	{ID: "amber", Name: "Amber", Value: "bg-amber-500"},
	{ID: "red", Name: "Red", Value: "bg-red-500"},
	{ID: "purple", Name: "Purple", Value: "bg-purple-500"},
	{ID: "pink", Name: "Pink", Value: "bg-pink-500"},
	{ID: "indigo", Name: "Indigo", Value: "bg-indigo-500"},
	{ID: "cyan", Name: "Cyan", Value: "bg-cyan-500"},
}

// Palette returns a copy of the available swatches in display order.
func Palette() []Swatch {
	out := make([]Swatch, len(palette))
	copy(out, palette)
	return out
}

func Lookup(id string) (Swatch, bool) {
	for _, s := range palette {
		if s.ID == id {
			return s, true
		}
	}
	return Swatch{}, false
}

// Derive returns the background/foreground pair for a palette id.
func Derive(id string) (Colors, error) {
	swatch, ok := Lookup(strings.ToLower(strings.TrimSpace(id)))
	if !ok {
		return Colors{}, fmt.Errorf("%w: %q", ErrUnknownColor, id)
	}

	base := strings.TrimSuffix(strings.TrimPrefix(swatch.Value, "bg-"), "-500")
	return Colors{
		Color:     fmt.Sprintf("bg-%s-100 dark:bg-opacity-75", base),
		TextColor: fmt.Sprintf("text-%s-700", base),
	}, nil
}

// IDFor recovers the palette id from a stored color token, or "" when the
// token was not produced by Derive.
func IDFor(color string) string {
	for _, s := range palette {
		if strings.HasPrefix(color, "bg-"+s.ID+"-100") {
			return s.ID
		}
	}
	return ""
}
