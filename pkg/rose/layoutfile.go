package rose

import (
	"encoding/json"
	"os"

	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose/layout"
)

// Visual styles for rendering.
const (
	StyleClassic = "classic" // filled petals, white/gray defaults
	StyleInk     = "ink"     // monochrome outlines
)

// Default fill colors for the primary and secondary series.
var DefaultColors = []string{"#ffffff", "#9e9e9e"}

// LayoutFile is the serialization format for a computed layout plus the
// render metadata needed to draw it later. It is the unit of exchange
// between the layout and visualize stages, and the payload cached between
// pipeline runs.
type LayoutFile struct {
	// Frame dimensions in pixels.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Style is the visual style name ("classic", "ink").
	Style string `json:"style,omitempty"`

	// Colors are the series fill colors (primary, secondary).
	Colors []string `json:"colors,omitempty"`

	// Legend toggles the legend box; SeriesNames are its entries.
	Legend      bool     `json:"legend,omitempty"`
	SeriesNames []string `json:"series_names,omitempty"`

	// Layout is the geometric result in unit-circle coordinates.
	Layout layout.Layout `json:"layout"`
}

// MarshalLayout serializes a LayoutFile to pretty-printed JSON bytes.
func MarshalLayout(l LayoutFile) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a LayoutFile.
// Validates that the layout contains at least one wedge.
func UnmarshalLayout(data []byte) (LayoutFile, error) {
	var l LayoutFile
	if err := json.Unmarshal(data, &l); err != nil {
		return LayoutFile{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "unmarshal layout")
	}
	if len(l.Layout.Primary) == 0 {
		return LayoutFile{}, errors.New(errors.ErrCodeInvalidDocument, "layout must contain wedges")
	}
	return l, nil
}

// WriteLayoutFile writes a LayoutFile to a JSON file.
func WriteLayoutFile(l LayoutFile, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a LayoutFile from a JSON file.
func ReadLayoutFile(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LayoutFile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return LayoutFile{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
