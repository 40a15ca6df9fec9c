package image

import (
	"errors"
	"testing"
)

func TestNewGeometry(t *testing.T) {
	g, err := NewGeometry(5, 4, 2)
	if err != nil {
		t.Fatalf("NewGeometry() error = %v", err)
	}

	want := Geometry{
		SrcWidth: 5, SrcHeight: 4, Scale: 2,
		DrawWidth: 3, DrawHeight: 2,
		RowBytes: 20, NewRowBytes: 12,
		OverflowRows: 0, OverflowCols: 1,
	}
	if g != want {
		t.Errorf("NewGeometry(5, 4, 2) = %+v, want %+v", g, want)
	}
	if g.SrcLen() != 80 {
		t.Errorf("SrcLen() = %d, want 80", g.SrcLen())
	}
	if g.DstLen() != 24 {
		t.Errorf("DstLen() = %d, want 24", g.DstLen())
	}
}

func TestNewGeometry_Invalid(t *testing.T) {
	tests := []struct{ width, height, scale int }{
		{0, 1, 1},
		{1, 0, 1},
		{-1, 1, 1},
		{1, 1, 0},
		{1, 1, -5},
	}
	for _, tt := range tests {
		if _, err := NewGeometry(tt.width, tt.height, tt.scale); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewGeometry(%d, %d, %d) error = %v, want ErrInvalidDimensions",
				tt.width, tt.height, tt.scale, err)
		}
	}
}

func TestGeometry_RegionsOnlyMainAndColumn(t *testing.T) {
	g, err := NewGeometry(5, 4, 2)
	if err != nil {
		t.Fatalf("NewGeometry() error = %v", err)
	}

	regions := g.Regions()
	if len(regions) != 2 {
		t.Fatalf("Regions() returned %d regions, want 2: %+v", len(regions), regions)
	}

	wantMain := Region{Kind: RegionMain, StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 2, RowWindow: 2, ColWindow: 2}
	wantCol := Region{Kind: RegionOverflowCol, StartRow: 0, EndRow: 2, StartCol: 2, EndCol: 3, RowWindow: 2, ColWindow: 1}
	if regions[0] != wantMain {
		t.Errorf("Regions()[0] = %+v, want %+v", regions[0], wantMain)
	}
	if regions[1] != wantCol {
		t.Errorf("Regions()[1] = %+v, want %+v", regions[1], wantCol)
	}
}

func TestGeometry_RegionKinds(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, scale int
		want                 []RegionKind
	}{
		{"evenly divisible", 8, 6, 2, []RegionKind{RegionMain}},
		{"overflow row", 8, 7, 2, []RegionKind{RegionMain, RegionOverflowRow}},
		{"overflow column", 9, 6, 2, []RegionKind{RegionMain, RegionOverflowCol}},
		{"all four", 9, 7, 2, []RegionKind{RegionMain, RegionOverflowRow, RegionOverflowCol, RegionOverflowCorner}},
		{"smaller than scale", 3, 2, 4, []RegionKind{RegionOverflowCorner}},
		{"narrower than scale", 3, 8, 4, []RegionKind{RegionOverflowCol}},
		{"scale one", 3, 3, 1, []RegionKind{RegionMain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGeometry(tt.width, tt.height, tt.scale)
			if err != nil {
				t.Fatalf("NewGeometry() error = %v", err)
			}
			regions := g.Regions()
			if len(regions) != len(tt.want) {
				t.Fatalf("Regions() = %+v, want kinds %v", regions, tt.want)
			}
			for i, r := range regions {
				if r.Kind != tt.want[i] {
					t.Errorf("Regions()[%d].Kind = %v, want %v", i, r.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestGeometry_RegionsPartitionDestination(t *testing.T) {
	for width := 1; width <= 12; width++ {
		for height := 1; height <= 12; height++ {
			for scale := 1; scale <= 5; scale++ {
				g, err := NewGeometry(width, height, scale)
				if err != nil {
					t.Fatalf("NewGeometry(%d, %d, %d) error = %v", width, height, scale, err)
				}

				hits := make([]int, g.DrawWidth*g.DrawHeight)
				total := 0
				for _, r := range g.Regions() {
					total += r.Pixels()
					for row := r.StartRow; row < r.EndRow; row++ {
						for col := r.StartCol; col < r.EndCol; col++ {
							hits[row*g.DrawWidth+col]++
						}
					}
				}

				for i, n := range hits {
					if n != 1 {
						t.Fatalf("%dx%d scale %d: destination pixel %d covered %d times, want 1",
							width, height, scale, i, n)
					}
				}
				if total != len(hits) {
					t.Errorf("%dx%d scale %d: regions cover %d pixels, want %d", width, height, scale, total, len(hits))
				}
			}
		}
	}
}

func TestGeometry_RegionWindowsStayInSource(t *testing.T) {
	for width := 1; width <= 12; width++ {
		for height := 1; height <= 12; height++ {
			for scale := 1; scale <= 5; scale++ {
				g, _ := NewGeometry(width, height, scale)
				for _, r := range g.Regions() {
					lastRow := (r.EndRow-1)*scale + r.RowWindow
					lastCol := (r.EndCol-1)*scale + r.ColWindow
					if lastRow > height || lastCol > width {
						t.Fatalf("%dx%d scale %d: region %v reads up to %dx%d", width, height, scale, r.Kind, lastCol, lastRow)
					}
				}
			}
		}
	}
}

func TestRegionKind_String(t *testing.T) {
	tests := []struct {
		kind RegionKind
		want string
	}{
		{RegionMain, "main"},
		{RegionOverflowRow, "overflow-row"},
		{RegionOverflowCol, "overflow-col"},
		{RegionOverflowCorner, "overflow-corner"},
		{RegionKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("RegionKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
