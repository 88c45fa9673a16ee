package extent

import (
	"context"
	"fmt"
	"strings"
)

// #region angle
// Angle is a viewing direction of a multi-angle asset. The string value is
// the suffix used in asset paths, e.g. "Hairs/Mop_east".
type Angle string

const (
	North Angle = "north"
	East  Angle = "east"
	South Angle = "south"
	West  Angle = "west"
)

// MeasureAngle is the canonical angle reference images are measured from.
// Side views show the full hang of the hair.
const MeasureAngle = East

// ReferencePath returns the reference image path of an asset group at angle.
func ReferencePath(group string, angle Angle) string {
	return group + "_" + string(angle)
}

// #endregion angle

// #region scan-policy
// ScanPolicy selects which columns are sampled when measuring.
type ScanPolicy string

const (
	// CenterColumn samples the single middle column.
	CenterColumn ScanPolicy = "center"
	// ColumnBand samples the central third of the columns; a row is opaque if
	// any sampled pixel in it is.
	ColumnBand ScanPolicy = "band"
)

// ParseScanPolicy accepts "center" or "band".
func ParseScanPolicy(s string) (ScanPolicy, error) {
	switch ScanPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case CenterColumn:
		return CenterColumn, nil
	case ColumnBand:
		return ColumnBand, nil
	}
	return "", fmt.Errorf("unknown scan policy %q", s)
}

// #endregion scan-policy

// #region estimator
// Estimator computes the bottom-extent percentage of an image: the height,
// measured from the bottom edge as a percentage of the image height, at
// which content first becomes non-transparent. Results are in [0,100].
type Estimator interface {
	Estimate(ctx context.Context, imagePath string, angle Angle) (int, error)
}

// #endregion estimator
