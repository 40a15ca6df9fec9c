package image

import "github.com/gogpu/ggscale/internal/parallel"

// Executor runs a batch of independent work items and returns when all of
// them have finished. *parallel.WorkerPool satisfies it.
type Executor interface {
	ExecuteAll(work []func())
}

// minBandRows is the smallest number of destination rows handed to a single
// work item when downsampling concurrently.
const minBandRows = 16

// Downsample shrinks src (width×height RGBA8, stride width*4) by scale using
// box averaging. The result is a new buffer of ceil(width/scale) ×
// ceil(height/scale) pixels. With scale 1 the result is a copy of src.
//
// Each channel of a destination pixel is the truncated mean of its source
// block. Blocks in the last row or column are smaller than scale×scale when
// the dimensions are not multiples of scale.
func Downsample(src []byte, width, height, scale int) ([]byte, Geometry, error) {
	return DownsampleWith(src, width, height, scale, nil)
}

// DownsampleWith is like Downsample but splits every region into row bands
// and runs them on exec. A nil exec filters sequentially.
// The output is identical to Downsample for the same input.
func DownsampleWith(src []byte, width, height, scale int, exec Executor) ([]byte, Geometry, error) {
	return DownsampleInto(nil, src, width, height, scale, exec)
}

// DownsampleInto is like DownsampleWith but writes into dst when it has
// exactly the destination length (see Geometry.DstLen). Every byte of dst
// is overwritten. Otherwise a new buffer is allocated.
func DownsampleInto(dst, src []byte, width, height, scale int, exec Executor) ([]byte, Geometry, error) {
	g, err := NewGeometry(width, height, scale)
	if err != nil {
		return nil, Geometry{}, err
	}
	if len(src) != g.SrcLen() {
		return nil, Geometry{}, ErrInvalidDimensions
	}

	if len(dst) != g.DstLen() {
		dst = make([]byte, g.DstLen())
	}
	if scale == 1 {
		copy(dst, src)
		return dst, g, nil
	}

	regions := g.Regions()
	if exec == nil {
		for _, r := range regions {
			filterRegion(dst, src, g, r)
		}
		return dst, g, nil
	}

	var work []func()
	for _, r := range regions {
		parts := (r.EndRow - r.StartRow) / minBandRows
		for _, span := range parallel.SplitRows(r.StartRow, r.EndRow, max(1, parts)) {
			band := r
			band.StartRow, band.EndRow = span.Start, span.End
			work = append(work, func() { filterRegion(dst, src, g, band) })
		}
	}
	exec.ExecuteAll(work)

	return dst, g, nil
}

// filterRegion averages each RowWindow×ColWindow source block of r into the
// corresponding destination pixel. Destination pixel (row, col) reads the
// block whose top-left source pixel is (row*Scale, col*Scale).
func filterRegion(dst, src []byte, g Geometry, r Region) {
	area := uint64(r.RowWindow * r.ColWindow)
	colBytes := r.ColWindow * BytesPerPixel

	for row := r.StartRow; row < r.EndRow; row++ {
		srcRow := row * g.Scale
		dstIdx := row*g.NewRowBytes + r.StartCol*BytesPerPixel

		for col := r.StartCol; col < r.EndCol; col++ {
			srcCol := col * g.Scale * BytesPerPixel
			var sumR, sumG, sumB, sumA uint64

			for boxRow := 0; boxRow < r.RowWindow; boxRow++ {
				start := (srcRow+boxRow)*g.RowBytes + srcCol
				block := src[start : start+colBytes : start+colBytes]
				for i := 0; i < len(block); i += BytesPerPixel {
					sumR += uint64(block[i])
					sumG += uint64(block[i+1])
					sumB += uint64(block[i+2])
					sumA += uint64(block[i+3])
				}
			}

			px := dst[dstIdx : dstIdx+BytesPerPixel : dstIdx+BytesPerPixel]
			//nolint:gosec // G115: a mean of uint8 samples is always in [0, 255]
			px[0] = uint8(sumR / area)
			//nolint:gosec // G115: safe
			px[1] = uint8(sumG / area)
			//nolint:gosec // G115: safe
			px[2] = uint8(sumB / area)
			//nolint:gosec // G115: safe
			px[3] = uint8(sumA / area)

			dstIdx += BytesPerPixel
		}
	}
}
