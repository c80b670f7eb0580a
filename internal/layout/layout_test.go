package layout

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestGrid_A4TwoByTwo(t *testing.T) {
	spec := Spec{Kind: Grid, PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 2, Cols: 2}
	ps, err := Compute(spec, Captions{Top: "A", Bottom: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 4 {
		t.Fatalf("expected 4 placements, got %d", len(ps))
	}

	p := ps[0]
	if !near(p.Border.W, 95) || !near(p.Border.H, 138.5) {
		t.Errorf("cell = %.4fx%.4f, want 95x138.5", p.Border.W, p.Border.H)
	}
	if !near(p.Image.W, 66.5) || !near(p.Image.H, 66.5) {
		t.Errorf("qr size = %.4f, want 66.5", p.Image.W)
	}

	centerX, centerY := 10+95.0/2, 10+138.5/2
	if !near(p.Image.X+p.Image.W/2, centerX) || !near(p.Image.Y+p.Image.H/2, centerY) {
		t.Errorf("qr not centered in cell: %+v", p.Image)
	}
	if p.Top.Text != "A" || !near(p.Top.X, centerX) || !near(p.Top.Y, centerY-66.5/2-2) {
		t.Errorf("top caption = %+v", p.Top)
	}
	if p.Bottom.Text != "B" || !near(p.Bottom.X, centerX) || !near(p.Bottom.Y, centerY+66.5/2+4) {
		t.Errorf("bottom caption = %+v", p.Bottom)
	}
	if p.FontSize != 8 {
		t.Errorf("font size = %v, want 8", p.FontSize)
	}
}

func TestGrid_TilesPrintableArea(t *testing.T) {
	tests := []struct {
		w, h, m    float64
		rows, cols int
	}{
		{210, 297, 10, 4, 4},
		{210, 297, 10, 2, 2},
		{297, 210, 5, 3, 5},
		{100, 100, 0, 1, 1},
		{215.9, 279.4, 12.7, 6, 3},
	}
	for _, tt := range tests {
		spec := Spec{Kind: Grid, PageWidth: tt.w, PageHeight: tt.h, Margin: tt.m, Rows: tt.rows, Cols: tt.cols}
		ps, err := Compute(spec, Captions{})
		if err != nil {
			t.Fatalf("%+v: %v", spec, err)
		}
		if len(ps) != tt.rows*tt.cols {
			t.Fatalf("%+v: %d placements", spec, len(ps))
		}

		wantSize := 0.7 * math.Min((tt.w-2*tt.m)/float64(tt.cols), (tt.h-2*tt.m)/float64(tt.rows))
		area := 0.0
		for i, p := range ps {
			b := p.Border
			area += b.W * b.H
			if !near(p.Image.W, wantSize) {
				t.Errorf("%+v cell %d: qr size %.6f, want %.6f", spec, i, p.Image.W, wantSize)
			}
			if b.X < tt.m-eps || b.Y < tt.m-eps || b.X+b.W > tt.w-tt.m+eps || b.Y+b.H > tt.h-tt.m+eps {
				t.Errorf("%+v cell %d outside printable area: %+v", spec, i, *b)
			}
			for j := i + 1; j < len(ps); j++ {
				o := ps[j].Border
				overlapW := math.Min(b.X+b.W, o.X+o.W) - math.Max(b.X, o.X)
				overlapH := math.Min(b.Y+b.H, o.Y+o.H) - math.Max(b.Y, o.Y)
				if overlapW > eps && overlapH > eps {
					t.Errorf("%+v cells %d and %d overlap", spec, i, j)
				}
			}
		}
		if printable := (tt.w - 2*tt.m) * (tt.h - 2*tt.m); math.Abs(area-printable) > 1e-6 {
			t.Errorf("%+v: cells cover %.6f, printable area is %.6f", spec, area, printable)
		}
	}
}

func TestLarge_Centered(t *testing.T) {
	spec := Spec{Kind: Large, PageWidth: 210, PageHeight: 297, Margin: 20}
	ps, err := Compute(spec, Captions{Top: "top", Bottom: "bottom"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(ps))
	}
	p := ps[0]
	size := 210.0 - 40
	if !near(p.Image.W, size) || !near(p.Image.H, size) {
		t.Errorf("size = %.4f, want %.4f", p.Image.W, size)
	}
	if !near(p.Image.X, (210-size)/2) || !near(p.Image.Y, (297-size)/2) {
		t.Errorf("position = (%.4f, %.4f)", p.Image.X, p.Image.Y)
	}
	if p.Border != nil {
		t.Error("large layout should not draw a border")
	}
	if !near(p.Top.X, 105) || !near(p.Top.Y, p.Image.Y-5) {
		t.Errorf("top caption = %+v", p.Top)
	}
	if !near(p.Bottom.X, 105) || !near(p.Bottom.Y, p.Image.Y+size+10) {
		t.Errorf("bottom caption = %+v", p.Bottom)
	}
	if p.FontSize != 12 {
		t.Errorf("font size = %v, want 12", p.FontSize)
	}
}

func TestLarge_Landscape(t *testing.T) {
	ps, err := Compute(Spec{Kind: Large, PageWidth: 297, PageHeight: 210, Margin: 10}, Captions{})
	if err != nil {
		t.Fatal(err)
	}
	if !near(ps[0].Image.W, 190) || !near(ps[0].Image.X, (297-190)/2.0) || !near(ps[0].Image.Y, 10) {
		t.Errorf("landscape placement = %+v", ps[0].Image)
	}
}

func TestCompute_Invalid(t *testing.T) {
	tests := []Spec{
		{Kind: Grid, PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 0, Cols: 2},
		{Kind: Grid, PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 2, Cols: -1},
		{Kind: Grid, PageWidth: 210, PageHeight: 297, Margin: 105, Rows: 2, Cols: 2},
		{Kind: Large, PageWidth: 210, PageHeight: 297, Margin: 120},
		{Kind: Large, PageWidth: 0, PageHeight: 297},
		{Kind: Large, PageWidth: 210, PageHeight: 297, Margin: -1},
		{Kind: Kind(7), PageWidth: 210, PageHeight: 297},
	}
	for _, spec := range tests {
		if _, err := Compute(spec, Captions{}); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%+v: got %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestCompute_Stateless(t *testing.T) {
	spec := Spec{Kind: Grid, PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 4, Cols: 4}
	a, _ := Compute(spec, Captions{Top: "x"})
	b, _ := Compute(spec, Captions{Top: "x"})
	for i := range a {
		if *a[i].Border != *b[i].Border || a[i].Image != b[i].Image || a[i].Top != b[i].Top {
			t.Fatalf("placement %d differs between calls", i)
		}
	}
}
