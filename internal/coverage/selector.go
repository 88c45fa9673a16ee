package coverage

// #region select-governing
// SelectGoverning picks the body-part group with the highest coverage level
// among garments not rendered in front of the face.
//
// When headgear is not rendered (some hosts clear apparel graphics while a
// character is washing, for example) or nothing qualifies, None is returned.
// Ties keep the first group seen in garment-then-group order.
func SelectGoverning(garments []Garment, rendered bool) GoverningCoverage {
	if !rendered {
		return None()
	}

	var (
		best  BodyPartGroup
		found bool
	)
	for _, g := range garments {
		if g.RenderedInFrontOfFace {
			continue
		}
		for _, grp := range g.Groups {
			if !found || grp.CoverageLevel > best.CoverageLevel {
				best = grp
				found = true
			}
		}
	}
	if !found {
		return None()
	}
	return GoverningCoverage{Group: best}
}

// ForCharacter is SelectGoverning over a character's worn garments.
func ForCharacter(c Character) GoverningCoverage {
	return SelectGoverning(c.Garments, c.HeadgearRendered)
}

// #endregion select-governing
