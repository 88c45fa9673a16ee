package extent

import (
	"context"
	"fmt"
	"image"

	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
)

// #region alpha-estimator
// AlphaEstimator measures the alpha channel of images loaded from a store.
type AlphaEstimator struct {
	Store  assetstore.Store
	Policy ScanPolicy
	// AlphaThreshold is the 16-bit alpha value a pixel must exceed to count
	// as opaque. Zero means any visible pixel.
	AlphaThreshold uint32
}

// NewAlphaEstimator returns an estimator using the given scan policy.
func NewAlphaEstimator(store assetstore.Store, policy ScanPolicy) *AlphaEstimator {
	return &AlphaEstimator{Store: store, Policy: policy}
}

// Estimate loads "{imagePath}_{angle}" and measures it.
// Load failures are returned wrapping assetstore.ErrAssetUnavailable.
func (e *AlphaEstimator) Estimate(ctx context.Context, imagePath string, angle Angle) (int, error) {
	ref := ReferencePath(imagePath, angle)
	img, err := e.Store.LoadImage(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("estimate %s: %w", ref, err)
	}
	return BottomExtent(img, e.Policy, e.AlphaThreshold), nil
}

// #endregion alpha-estimator

// #region bottom-extent
// BottomExtent scans rows from the bottom edge upward and returns the
// percentage of the height below the first opaque row. An image with no
// opaque sampled pixel yields 100.
func BottomExtent(img image.Image, policy ScanPolicy, threshold uint32) int {
	b := img.Bounds()
	h := b.Dy()
	if h <= 0 || b.Dx() <= 0 {
		return 100
	}

	x0, x1 := columns(b, policy)
	for rows := 0; rows < h; rows++ {
		y := b.Max.Y - 1 - rows
		for x := x0; x < x1; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a > threshold {
				return percent(rows, h)
			}
		}
	}
	return 100
}

// columns returns the half-open column range sampled under policy.
func columns(b image.Rectangle, policy ScanPolicy) (int, int) {
	w := b.Dx()
	mid := b.Min.X + w/2
	if policy != ColumnBand || w < 3 {
		return mid, mid + 1
	}
	third := w / 3
	return b.Min.X + third, b.Max.X - third
}

func percent(rows, h int) int {
	p := (rows*100 + h/2) / h
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// #endregion bottom-extent
