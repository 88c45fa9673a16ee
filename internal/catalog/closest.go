package catalog

import (
	"path"
	"strings"

	"github.com/agnivade/levenshtein"
)

// #region closest
// Closest picks the candidate whose final path segment has the smallest edit
// distance to the hairstyle's final segment, compared case-insensitively.
// Ties go to the earlier declared candidate. Returns "" for an empty list.
func (e FallbackEntry) Closest(hairstyle string) string {
	name := leaf(hairstyle)
	best := ""
	bestDist := -1
	for _, c := range e.Candidates {
		d := levenshtein.ComputeDistance(name, leaf(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func leaf(p string) string {
	return strings.ToLower(path.Base(strings.TrimRight(p, "/")))
}

// #endregion closest
