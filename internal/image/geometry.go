// Package image implements the box-filter downsampler used by ggscale.
//
// The downsampler shrinks a tightly packed RGBA8 buffer by an integer factor.
// The destination is tiled into up to four regions (main grid, overflow row,
// overflow column, overflow corner) whose source blocks have different sizes
// when the source dimensions are not multiples of the scale.
package image

import "errors"

// BytesPerPixel is the number of samples per RGBA8 pixel.
const BytesPerPixel = 4

// ErrInvalidDimensions is returned when the scale, width, height or buffer
// length do not describe a valid RGBA8 image.
var ErrInvalidDimensions = errors.New("image: invalid dimensions")

// RegionKind identifies which part of the destination a Region covers.
type RegionKind uint8

const (
	// RegionMain covers destination pixels backed by full scale×scale blocks.
	RegionMain RegionKind = iota

	// RegionOverflowRow is the last destination row when height%scale != 0.
	RegionOverflowRow

	// RegionOverflowCol is the last destination column when width%scale != 0.
	RegionOverflowCol

	// RegionOverflowCorner is the bottom-right pixel when both overflow.
	RegionOverflowCorner
)

// String returns a short name for the region kind.
func (k RegionKind) String() string {
	switch k {
	case RegionMain:
		return "main"
	case RegionOverflowRow:
		return "overflow-row"
	case RegionOverflowCol:
		return "overflow-col"
	case RegionOverflowCorner:
		return "overflow-corner"
	default:
		return "unknown"
	}
}

// Region describes a rectangle of destination pixels [StartRow, EndRow) ×
// [StartCol, EndCol) and the source block (RowWindow × ColWindow) averaged
// into each of them. Columns are in pixels, not bytes.
type Region struct {
	Kind      RegionKind
	StartRow  int
	EndRow    int
	StartCol  int
	EndCol    int
	RowWindow int
	ColWindow int
}

// Empty reports whether the region covers no destination pixels.
func (r Region) Empty() bool {
	return r.StartRow >= r.EndRow || r.StartCol >= r.EndCol
}

// Pixels returns the number of destination pixels in the region.
func (r Region) Pixels() int {
	if r.Empty() {
		return 0
	}
	return (r.EndRow - r.StartRow) * (r.EndCol - r.StartCol)
}

// Geometry holds the derived sizes for one downsampling call.
type Geometry struct {
	SrcWidth  int
	SrcHeight int
	Scale     int

	// DrawWidth and DrawHeight are ceil(SrcWidth/Scale) and ceil(SrcHeight/Scale).
	DrawWidth  int
	DrawHeight int

	// RowBytes is the source stride, NewRowBytes the destination stride.
	RowBytes    int
	NewRowBytes int

	// OverflowRows is SrcHeight % Scale, OverflowCols is SrcWidth % Scale.
	OverflowRows int
	OverflowCols int
}

// NewGeometry validates the arguments and derives the destination geometry.
func NewGeometry(width, height, scale int) (Geometry, error) {
	if width <= 0 || height <= 0 || scale < 1 {
		return Geometry{}, ErrInvalidDimensions
	}

	// Rounded up without forming width+scale, which overflows for huge scales.
	drawWidth := (width-1)/scale + 1
	drawHeight := (height-1)/scale + 1

	return Geometry{
		SrcWidth:     width,
		SrcHeight:    height,
		Scale:        scale,
		DrawWidth:    drawWidth,
		DrawHeight:   drawHeight,
		RowBytes:     width * BytesPerPixel,
		NewRowBytes:  drawWidth * BytesPerPixel,
		OverflowRows: height % scale,
		OverflowCols: width % scale,
	}, nil
}

// DstLen returns the destination buffer length in bytes.
func (g Geometry) DstLen() int {
	return g.DrawHeight * g.NewRowBytes
}

// SrcLen returns the expected source buffer length in bytes.
func (g Geometry) SrcLen() int {
	return g.SrcHeight * g.RowBytes
}

// Regions returns the non-empty regions tiling the destination, in the
// order main, overflow row, overflow column, overflow corner.
func (g Geometry) Regions() []Region {
	// Rows and columns before the overflow band.
	mainRows := g.DrawHeight
	if g.OverflowRows > 0 {
		mainRows--
	}
	mainCols := g.DrawWidth
	if g.OverflowCols > 0 {
		mainCols--
	}

	all := [...]Region{
		{
			Kind:     RegionMain,
			StartRow: 0, EndRow: mainRows,
			StartCol: 0, EndCol: mainCols,
			RowWindow: g.Scale, ColWindow: g.Scale,
		},
		{
			Kind:     RegionOverflowRow,
			StartRow: mainRows, EndRow: g.DrawHeight,
			StartCol: 0, EndCol: mainCols,
			RowWindow: g.OverflowRows, ColWindow: g.Scale,
		},
		{
			Kind:     RegionOverflowCol,
			StartRow: 0, EndRow: mainRows,
			StartCol: mainCols, EndCol: g.DrawWidth,
			RowWindow: g.Scale, ColWindow: g.OverflowCols,
		},
		{
			Kind:     RegionOverflowCorner,
			StartRow: mainRows, EndRow: g.DrawHeight,
			StartCol: mainCols, EndCol: g.DrawWidth,
			RowWindow: g.OverflowRows, ColWindow: g.OverflowCols,
		},
	}

	regions := make([]Region, 0, len(all))
	for _, r := range all {
		if r.Empty() || r.RowWindow == 0 || r.ColWindow == 0 {
			continue
		}
		regions = append(regions, r)
	}
	return regions
}
