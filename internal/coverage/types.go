package coverage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// #region tag
// Tag names the sub-asset variant requested once a base hair group is chosen.
// The string value is used verbatim as a path segment.
type Tag string

const (
	TagNone   Tag = "None"
	TagLow    Tag = "Low"
	TagMedium Tag = "Medium"
	TagHigh   Tag = "High"
	TagFull   Tag = "Full"
)

// tagOrder is indexed by coverage level.
var tagOrder = []Tag{TagNone, TagLow, TagMedium, TagHigh, TagFull}

var tagLevels = map[Tag]int{
	TagNone:   0,
	TagLow:    1,
	TagMedium: 2,
	TagHigh:   3,
	TagFull:   4,
}

// Level returns the ordinal of the tag, or -1 for unknown tags.
func (t Tag) Level() int {
	if lvl, ok := tagLevels[t]; ok {
		return lvl
	}
	return -1
}

// ParseTag accepts a tag name in any case.
func ParseTag(s string) (Tag, error) {
	for t := range tagLevels {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown coverage tag %q", s)
}

// TagForLevel returns the tag of a coverage level.
func TagForLevel(level int) (Tag, bool) {
	if level < 0 || level >= len(tagOrder) {
		return "", false
	}
	return tagOrder[level], true
}

// UnmarshalJSON accepts tag names in any case and rejects unknown ones.
// An empty string decodes to the empty tag so the owning group can derive it.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coverage tag: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*t = ""
		return nil
	}
	parsed, err := ParseTag(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// #endregion tag

// #region body-part-group
// BodyPartGroup is the coverage metadata a garment carries for one body region.
type BodyPartGroup struct {
	Name          string `json:"name"`
	CoverageLevel int    `json:"coverage_level"`
	IsHead        bool   `json:"is_head"`
	Tag           Tag    `json:"tag"`
}

// UnmarshalJSON fills whichever of coverage_level and tag is missing from
// the other and rejects groups where the two disagree.
func (g *BodyPartGroup) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          string `json:"name"`
		CoverageLevel *int   `json:"coverage_level"`
		IsHead        bool   `json:"is_head"`
		Tag           Tag    `json:"tag"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := BodyPartGroup{Name: raw.Name, IsHead: raw.IsHead, Tag: raw.Tag}
	switch {
	case raw.CoverageLevel == nil && raw.Tag == "":
		out.Tag = TagNone
	case raw.CoverageLevel == nil:
		out.CoverageLevel = raw.Tag.Level()
	case raw.Tag == "":
		tag, ok := TagForLevel(*raw.CoverageLevel)
		if !ok {
			return fmt.Errorf("group %q: coverage level %d has no tag", raw.Name, *raw.CoverageLevel)
		}
		out.CoverageLevel = *raw.CoverageLevel
		out.Tag = tag
	default:
		if raw.Tag.Level() != *raw.CoverageLevel {
			return fmt.Errorf("group %q: coverage level %d disagrees with tag %s", raw.Name, *raw.CoverageLevel, raw.Tag)
		}
		out.CoverageLevel = *raw.CoverageLevel
	}
	*g = out
	return nil
}

// #endregion body-part-group

// #region garment
// Garment is a worn apparel item and the body-part groups it covers.
type Garment struct {
	Label                 string          `json:"label"`
	RenderedInFrontOfFace bool            `json:"rendered_in_front_of_face"`
	Groups                []BodyPartGroup `json:"groups"`
}

// Character is the per-query view of the character model.
type Character struct {
	Name             string    `json:"name"`
	Hairstyle        string    `json:"hairstyle"`
	Garments         []Garment `json:"garments"`
	HeadgearRendered bool      `json:"headgear_rendered"`
}

// #endregion garment

// #region governing
// GoverningCoverage is the single group definition that drives resolution.
// It is derived on every query and never stored.
type GoverningCoverage struct {
	Group BodyPartGroup
}

// Covered reports whether the governing group is classified as head coverage.
func (g GoverningCoverage) Covered() bool {
	return g.Group.IsHead
}

// Tag returns the coverage tag of the governing group. A group built without
// a tag falls back to the tag of its coverage level.
func (g GoverningCoverage) Tag() Tag {
	if g.Group.Tag != "" {
		return g.Group.Tag
	}
	if tag, ok := TagForLevel(g.Group.CoverageLevel); ok {
		return tag
	}
	return TagNone
}

// None is the "no coverage" sentinel: level zero, not a head group.
func None() GoverningCoverage {
	return GoverningCoverage{Group: BodyPartGroup{Name: "None", Tag: TagNone}}
}

// Head builds a head-covering governing coverage with the given tag.
func Head(tag Tag) GoverningCoverage {
	return GoverningCoverage{Group: BodyPartGroup{
		Name:          "Head",
		CoverageLevel: tag.Level(),
		IsHead:        true,
		Tag:           tag,
	}}
}

// #endregion governing
