package rose

import (
	"encoding/json"
	"os"

	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose/layout"
)

// Document is the canonical input dataset for a rose diagram.
//
// Values is the required primary series; everything else is optional.
// Secondary adds a comparison petal layer, Spokes add per-bin uncertainty
// lines, Labels annotate the bins. PrimaryName and SecondaryName feed the
// legend.
type Document struct {
	Name          string    `json:"name,omitempty"`
	PrimaryName   string    `json:"primary_name,omitempty"`
	SecondaryName string    `json:"secondary_name,omitempty"`
	Values        []float64 `json:"values"`
	Secondary     []float64 `json:"secondary,omitempty"`
	Spokes        []float64 `json:"spokes,omitempty"`
	Labels        []string  `json:"labels,omitempty"`
}

// Data converts the document to the layout engine's input type.
func (d Document) Data() layout.Data {
	return layout.Data{
		Primary:   d.Values,
		Secondary: d.Secondary,
		Spokes:    d.Spokes,
		Labels:    d.Labels,
	}
}

// HasSecondary reports whether the document carries a comparison series.
func (d Document) HasSecondary() bool { return len(d.Secondary) > 0 }

// SeriesNames returns the legend names, falling back to generic names for
// unnamed series.
func (d Document) SeriesNames() []string {
	primary := d.PrimaryName
	if primary == "" {
		primary = "series 1"
	}
	if !d.HasSecondary() {
		return []string{primary}
	}
	secondary := d.SecondaryName
	if secondary == "" {
		secondary = "series 2"
	}
	return []string{primary, secondary}
}

// Validate checks the structural requirements a document must meet before
// layout. Length mismatches are deliberately not checked here; the layout
// engine handles them as recoverable warnings.
func (d Document) Validate() error {
	if len(d.Values) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no values")
	}
	return nil
}

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a Document and validates it.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "unmarshal document")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadDocumentFile reads a Document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return UnmarshalDocument(data)
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
