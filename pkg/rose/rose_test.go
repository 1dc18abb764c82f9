package rose

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose/layout"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		Name:          "wind",
		PrimaryName:   "2024",
		SecondaryName: "2025",
		Values:        []float64{1, 2, 3, 4},
		Secondary:     []float64{4, 3, 2, 1},
		Spokes:        []float64{0.1, 0.2, 0.3, 0.4},
		Labels:        []string{"N", "E", "S", "W"},
	}

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument() error: %v", err)
	}

	got, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument() error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, doc)
	}
}

func TestUnmarshalDocumentRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"NoValues", `{"name":"x"}`},
		{"EmptyValues", `{"values":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := UnmarshalDocument([]byte(`{`))
		if !errors.Is(err, errors.ErrCodeInvalidDocument) {
			t.Errorf("error = %v, want INVALID_DOCUMENT", err)
		}
	})
}

func TestDocumentSeriesNames(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []string
	}{
		{
			name: "SingleUnnamed",
			doc:  Document{Values: []float64{1}},
			want: []string{"series 1"},
		},
		{
			name: "SingleNamed",
			doc:  Document{Values: []float64{1}, PrimaryName: "obs"},
			want: []string{"obs"},
		},
		{
			name: "TwoSeries",
			doc:  Document{Values: []float64{1}, Secondary: []float64{2}, PrimaryName: "a", SecondaryName: "b"},
			want: []string{"a", "b"},
		},
		{
			name: "TwoSeriesUnnamed",
			doc:  Document{Values: []float64{1}, Secondary: []float64{2}},
			want: []string{"series 1", "series 2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.SeriesNames(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SeriesNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	doc := Document{Values: []float64{1, 2, 3}}
	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile() error: %v", err)
	}

	got, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestReadDocumentFileNotFound(t *testing.T) {
	_, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l, err := layout.Build(layout.Data{Primary: []float64{1, 2, 3}}, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	lf := LayoutFile{
		Width:       800,
		Height:      800,
		Style:       StyleClassic,
		Colors:      DefaultColors,
		Legend:      false,
		SeriesNames: []string{"obs"},
		Layout:      l,
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	if err := WriteLayoutFile(lf, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}

	if got.Width != 800 || got.Style != StyleClassic {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if len(got.Layout.Primary) != 3 {
		t.Errorf("wedges = %d, want 3", len(got.Layout.Primary))
	}
	if !reflect.DeepEqual(got.Layout.Primary, l.Primary) {
		t.Error("wedge geometry changed in round trip")
	}
}

func TestUnmarshalLayoutRejectsEmpty(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"width":800,"height":800,"layout":{"bins":0}}`))
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("error = %v, want INVALID_DOCUMENT", err)
	}
}

func TestDocumentData(t *testing.T) {
	doc := Document{
		Values:    []float64{1, 2},
		Secondary: []float64{3},
		Spokes:    []float64{4, 5},
		Labels:    []string{"a"},
	}
	d := doc.Data()
	if !reflect.DeepEqual(d.Primary, doc.Values) ||
		!reflect.DeepEqual(d.Secondary, doc.Secondary) ||
		!reflect.DeepEqual(d.Spokes, doc.Spokes) ||
		!reflect.DeepEqual(d.Labels, doc.Labels) {
		t.Errorf("Data() = %+v", d)
	}
}
