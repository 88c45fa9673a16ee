package logging

import "time"

// #region resolution-entry
// ResolutionEntry is a single row in the resolution_log table: one computed
// fallback choice. Cache hits are not logged.
type ResolutionEntry struct {
	ID         string
	CatalogID  string
	Hairstyle  string
	Tag        string
	Percentage int
	RangeName  string
	Chosen     string
	Path       string
	CreatedAt  time.Time
}

// #endregion resolution-entry
