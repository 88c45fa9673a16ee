package assetstore

import (
	"context"
	"errors"
	"image"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// #region errors
// ErrAssetUnavailable is returned when a referenced image cannot be loaded.
var ErrAssetUnavailable = errors.New("asset unavailable")

// #endregion errors

// #region store
// Store is the image-access collaborator. Paths are slash-delimited and carry
// no file extension, e.g. "Things/Hairs/Mop/Medium_south".
type Store interface {
	// Exists reports whether an image is present at path. Lookup failures
	// count as absent.
	Exists(ctx context.Context, path string) bool
	// LoadImage decodes the image at path. Failures wrap ErrAssetUnavailable.
	LoadImage(ctx context.Context, path string) (image.Image, error)
}

// #endregion store

// #region extensions
// Extensions lists the file suffixes probed for an asset path, in order.
var Extensions = []string{".png", ".bmp", ".tif", ".tiff", ".webp"}

// #endregion extensions
