package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/mlenz/rosette/pkg/errors"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBuildWedgeCounts(t *testing.T) {
	tests := []struct {
		name          string
		data          Data
		wantPrimary   int
		wantSecondary int
	}{
		{
			name:        "SingleBin",
			data:        Data{Primary: []float64{5}},
			wantPrimary: 1,
		},
		{
			name:        "FourBins",
			data:        Data{Primary: []float64{1, 2, 3, 4}},
			wantPrimary: 4,
		},
		{
			name:          "TwoSeries",
			data:          Data{Primary: []float64{1, 2, 3}, Secondary: []float64{3, 2, 1}},
			wantPrimary:   3,
			wantSecondary: 3,
		},
		{
			name:        "ZeroValueAmongPositive",
			data:        Data{Primary: []float64{0, 1, 2}},
			wantPrimary: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Build(tt.data, DefaultOptions())
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if len(l.Primary) != tt.wantPrimary {
				t.Errorf("primary wedges = %d, want %d", len(l.Primary), tt.wantPrimary)
			}
			if len(l.Secondary) != tt.wantSecondary {
				t.Errorf("secondary wedges = %d, want %d", len(l.Secondary), tt.wantSecondary)
			}
			if len(l.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", l.Warnings)
			}
		})
	}
}

func TestBuildNegativeErrorOrder(t *testing.T) {
	// With negatives in several series the primary is always the one
	// reported, so the error message is stable across runs.
	d := Data{
		Primary:   []float64{1, -2},
		Secondary: []float64{-3, 4},
		Spokes:    []float64{-5, 6},
	}
	for i := 0; i < 10; i++ {
		_, err := Build(d, DefaultOptions())
		if err == nil {
			t.Fatal("Build() error = nil, want error")
		}
		if got := err.Error(); !strings.Contains(got, "primary[1]") {
			t.Fatalf("error = %q, want primary[1] reported", got)
		}
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		data     Data
		wantCode errors.Code
	}{
		{
			name:     "EmptyPrimary",
			data:     Data{},
			wantCode: errors.ErrCodeInvalidSeries,
		},
		{
			name:     "NegativePrimary",
			data:     Data{Primary: []float64{1, -2, 3}},
			wantCode: errors.ErrCodeInvalidSeries,
		},
		{
			name:     "NegativeSecondary",
			data:     Data{Primary: []float64{1, 2}, Secondary: []float64{-1, 2}},
			wantCode: errors.ErrCodeInvalidSeries,
		},
		{
			name:     "AllZero",
			data:     Data{Primary: []float64{0, 0, 0}},
			wantCode: errors.ErrCodeDegenerateSeries,
		},
		{
			name:     "AllZeroBothSeries",
			data:     Data{Primary: []float64{0, 0}, Secondary: []float64{0, 0}},
			wantCode: errors.ErrCodeDegenerateSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.data, DefaultOptions())
			if err == nil {
				t.Fatal("Build() error = nil, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

// The wedge holding the maximum transformed value must reach radius Scale
// exactly; every other wedge stays at or below it.
func TestMaxWedgeReachesScale(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 0.8

	l, err := Build(Data{Primary: []float64{1, 2, 3, 4}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := l.Primary[3].MaxRadius(); !almostEqual(got, 0.8) {
		t.Errorf("max wedge radius = %v, want 0.8", got)
	}
	for k, p := range l.Primary {
		if r := p.MaxRadius(); r > 0.8+epsilon {
			t.Errorf("wedge %d radius %v exceeds scale", k, r)
		}
	}

	// Worked example from the area transform: value 1 against max 4 gives
	// radius 0.8 * sqrt(1)/sqrt(4) = 0.4.
	if got := l.Primary[0].MaxRadius(); !almostEqual(got, 0.4) {
		t.Errorf("wedge 0 radius = %v, want 0.4", got)
	}
}

// In a two-series layout the shared maximum drives both normalizations, so
// the larger series caps at Scale and the other scales relative to it.
func TestTwoSeriesSharedNormalization(t *testing.T) {
	opts := DefaultOptions()
	opts.LengthMode = true

	l, err := Build(Data{Primary: []float64{2, 2}, Secondary: []float64{4, 1}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := l.Secondary[0].MaxRadius(); !almostEqual(got, opts.Scale) {
		t.Errorf("secondary max radius = %v, want %v", got, opts.Scale)
	}
	if got := l.Primary[0].MaxRadius(); !almostEqual(got, opts.Scale/2) {
		t.Errorf("primary radius = %v, want %v", got, opts.Scale/2)
	}
}

func TestAreaTransformMonotonic(t *testing.T) {
	values := []float64{0.1, 0.5, 1, 2, 3.7, 10, 100}
	transformed := transform(values, false)
	for i := 1; i < len(transformed); i++ {
		if transformed[i] <= transformed[i-1] {
			t.Errorf("transform not monotonic at %d: %v <= %v", i, transformed[i], transformed[i-1])
		}
	}
}

// Reversing the direction mirrors the layout across the vertical axis:
// every vertex keeps its Y and negates its X, bin order unchanged.
func TestClockwiseMirrorsCounterclockwise(t *testing.T) {
	data := Data{Primary: []float64{1, 2, 3, 4, 5}}

	cw := DefaultOptions()
	cw.Clockwise = true
	ccw := DefaultOptions()
	ccw.Clockwise = false

	lcw, err := Build(data, cw)
	if err != nil {
		t.Fatalf("Build(clockwise) error: %v", err)
	}
	lccw, err := Build(data, ccw)
	if err != nil {
		t.Fatalf("Build(counterclockwise) error: %v", err)
	}

	for k := range lcw.Primary {
		a, b := lcw.Primary[k], lccw.Primary[k]
		if len(a) != len(b) {
			t.Fatalf("wedge %d vertex count %d != %d", k, len(a), len(b))
		}
		for i := range a {
			if !almostEqual(a[i].X, -b[i].X) || !almostEqual(a[i].Y, b[i].Y) {
				t.Fatalf("wedge %d vertex %d: %+v is not the mirror of %+v", k, i, a[i], b[i])
			}
		}
		if !almostEqual(a.MaxRadius(), b.MaxRadius()) {
			t.Errorf("wedge %d radius changed with direction", k)
		}
	}
}

// A two-series bin splits into two polygons covering disjoint angular
// halves that together span the bin's full width.
func TestTwoSeriesAngularHalves(t *testing.T) {
	opts := DefaultOptions()
	opts.Clockwise = false // keep angles increasing for easier assertions

	l, err := Build(Data{Primary: []float64{1, 1, 1, 1}, Secondary: []float64{1, 1, 1, 1}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	binWidth := math.Pi / 2
	for k := 0; k < 4; k++ {
		start := clockStart + float64(k)*binWidth
		mid := start + binWidth/2
		end := start + binWidth

		checkSpan := func(p Polygon, wantStart, wantEnd float64) {
			t.Helper()
			// Outer arc vertices sit between the two inset points. Compare
			// angles modulo 2pi to be safe around the wrap.
			first := math.Atan2(p[1].Y, p[1].X)
			last := math.Atan2(p[len(p)-2].Y, p[len(p)-2].X)
			if d := math.Remainder(first-wantStart, 2*math.Pi); math.Abs(d) > 1e-6 {
				t.Errorf("bin %d arc starts at %v, want %v", k, first, wantStart)
			}
			if d := math.Remainder(last-wantEnd, 2*math.Pi); math.Abs(d) > 1e-6 {
				t.Errorf("bin %d arc ends at %v, want %v", k, last, wantEnd)
			}
		}

		checkSpan(l.Primary[k], start, mid)
		checkSpan(l.Secondary[k], mid, end)
	}
}

func TestMismatchedSeriesLengths(t *testing.T) {
	l, err := Build(Data{
		Primary:   []float64{1, 2, 3, 4, 5},
		Secondary: []float64{1, 2, 3},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Primary) != 5 {
		t.Errorf("primary wedges = %d, want 5", len(l.Primary))
	}
	if len(l.Secondary) != 3 {
		t.Errorf("secondary wedges = %d, want 3", len(l.Secondary))
	}
	if len(l.Warnings) != 1 || !strings.Contains(l.Warnings[0], "secondary series length 3") {
		t.Errorf("warnings = %v, want one length-mismatch warning", l.Warnings)
	}
}

func TestWedgeShape(t *testing.T) {
	opts := DefaultOptions()
	opts.CenterInset = 0.05

	l, err := Build(Data{Primary: []float64{1, 2}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// Full wedge: two inset vertices bracketing the sampled outer arc.
	p := l.Primary[0]
	if len(p) != arcSamples+2 {
		t.Fatalf("vertex count = %d, want %d", len(p), arcSamples+2)
	}
	if r := math.Hypot(p[0].X, p[0].Y); !almostEqual(r, 0.05) {
		t.Errorf("leading edge radius = %v, want inset 0.05", r)
	}
	if r := math.Hypot(p[len(p)-1].X, p[len(p)-1].Y); !almostEqual(r, 0.05) {
		t.Errorf("trailing edge radius = %v, want inset 0.05", r)
	}

	// Every outer arc vertex sits at the wedge radius.
	radius := p.MaxRadius()
	for i := 1; i < len(p)-1; i++ {
		if r := math.Hypot(p[i].X, p[i].Y); !almostEqual(r, radius) {
			t.Errorf("arc vertex %d radius = %v, want %v", i, r, radius)
		}
	}

	// Two-series wedges use half the sample budget.
	l2, err := Build(Data{Primary: []float64{1, 2}, Secondary: []float64{2, 1}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := len(l2.Primary[0]); got != arcSamples/2+2 {
		t.Errorf("half wedge vertex count = %d, want %d", got, arcSamples/2+2)
	}
}

func TestSpokes(t *testing.T) {
	opts := DefaultOptions()

	l, err := Build(Data{
		Primary: []float64{1, 2, 3, 4},
		Spokes:  []float64{1, 2, 4, 2},
	}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Spokes) != 4 {
		t.Fatalf("spokes = %d, want 4", len(l.Spokes))
	}

	// Spokes normalize independently of the wedge series: the largest spoke
	// reaches Scale.
	maxLen := 0.0
	for _, s := range l.Spokes {
		if r := math.Hypot(s.To.X, s.To.Y); r > maxLen {
			maxLen = r
		}
		if r := math.Hypot(s.From.X, s.From.Y); !almostEqual(r, opts.CenterInset) {
			t.Errorf("spoke starts at radius %v, want inset %v", r, opts.CenterInset)
		}
	}
	if !almostEqual(maxLen, opts.Scale) {
		t.Errorf("longest spoke = %v, want scale %v", maxLen, opts.Scale)
	}

	// Each spoke lies on its bin bisector: endpoints are collinear with the
	// origin.
	for i, s := range l.Spokes {
		cross := s.From.X*s.To.Y - s.From.Y*s.To.X
		if math.Abs(cross) > 1e-9 {
			t.Errorf("spoke %d not radial: cross product %v", i, cross)
		}
	}
}

func TestAllZeroSpokesOmittedWithWarning(t *testing.T) {
	l, err := Build(Data{
		Primary: []float64{1, 2},
		Spokes:  []float64{0, 0},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(l.Spokes) != 0 {
		t.Errorf("spokes = %d, want 0", len(l.Spokes))
	}
	if len(l.Warnings) != 1 || !strings.Contains(l.Warnings[0], "spoke") {
		t.Errorf("warnings = %v, want spoke warning", l.Warnings)
	}
}

func TestSeparators(t *testing.T) {
	opts := DefaultOptions()
	opts.Separators = true

	l, err := Build(Data{Primary: []float64{1, 2, 3}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(l.Separators) != 3 {
		t.Fatalf("separators = %d, want 3", len(l.Separators))
	}
	for i, s := range l.Separators {
		if r := math.Hypot(s.From.X, s.From.Y); !almostEqual(r, opts.CenterInset) {
			t.Errorf("separator %d starts at radius %v, want %v", i, r, opts.CenterInset)
		}
		if r := math.Hypot(s.To.X, s.To.Y); !almostEqual(r, 1) {
			t.Errorf("separator %d ends at radius %v, want 1", i, r)
		}
	}
}

func TestLabels(t *testing.T) {
	t.Run("WithStats", func(t *testing.T) {
		opts := DefaultOptions()
		opts.DP = 2

		l, err := Build(Data{
			Primary: []float64{1.5, 2.25},
			Labels:  []string{"N", "S"},
		}, opts)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}

		if len(l.Labels) != 2 {
			t.Fatalf("labels = %d, want 2", len(l.Labels))
		}
		if l.Labels[0].Text != "N" || l.Labels[0].Stat != "1.50" {
			t.Errorf("label 0 = %+v, want text N stat 1.50", l.Labels[0])
		}
		if l.Labels[1].Stat != "2.25" {
			t.Errorf("label 1 stat = %q, want 2.25", l.Labels[1].Stat)
		}
		for i, lbl := range l.Labels {
			if r := math.Hypot(lbl.At.X, lbl.At.Y); !almostEqual(r, labelStatRadius) {
				t.Errorf("label %d anchor radius = %v, want %v", i, r, labelStatRadius)
			}
		}
	})

	t.Run("WithoutStats", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Stats = false

		l, err := Build(Data{Primary: []float64{1, 2}, Labels: []string{"a", "b"}}, opts)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		for i, lbl := range l.Labels {
			if lbl.Stat != "" {
				t.Errorf("label %d stat = %q, want empty", i, lbl.Stat)
			}
			if r := math.Hypot(lbl.At.X, lbl.At.Y); !almostEqual(r, labelRadius) {
				t.Errorf("label %d anchor radius = %v, want %v", i, r, labelRadius)
			}
		}
	})

	t.Run("ExtraLabelsIgnored", func(t *testing.T) {
		l, err := Build(Data{Primary: []float64{1, 2}, Labels: []string{"a", "b", "c", "d"}}, DefaultOptions())
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if len(l.Labels) != 2 {
			t.Errorf("labels = %d, want 2", len(l.Labels))
		}
	})
}

func TestScaleAcceptedUnvalidated(t *testing.T) {
	// Scale outside (0,1] is a visual choice, not an error.
	opts := DefaultOptions()
	opts.Scale = 1.7

	l, err := Build(Data{Primary: []float64{1, 2}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := l.Primary[1].MaxRadius(); !almostEqual(got, 1.7) {
		t.Errorf("max radius = %v, want 1.7", got)
	}
}

func TestBinsOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.Bins = 8

	l, err := Build(Data{Primary: []float64{1, 2, 3, 4}}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if l.Bins != 8 {
		t.Errorf("bins = %d, want 8", l.Bins)
	}
	// Four wedges spread over eight divisions: each spans a quarter of the
	// half circle.
	if len(l.Primary) != 4 {
		t.Errorf("wedges = %d, want 4", len(l.Primary))
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	data := Data{Primary: []float64{3, 1, 4, 1, 5}, Spokes: []float64{1, 2, 1, 2, 1}}

	a, err := Build(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	b, err := Build(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	for k := range a.Primary {
		for i := range a.Primary[k] {
			if a.Primary[k][i] != b.Primary[k][i] {
				t.Fatalf("wedge %d vertex %d differs between runs", k, i)
			}
		}
	}
}
