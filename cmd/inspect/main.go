package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/danielpatrickdp/hairfallback/internal/logging"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the resolution audit db")
	last := flag.Int("last", 20, "show N most recent resolutions")
	hairstyle := flag.String("hairstyle", "", "only show one hairstyle")
	byRange := flag.Bool("ranges", false, "summarize chosen groups per catalog range")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/audit.db [--last N] [--hairstyle path] [--ranges] [--json]")
		os.Exit(2)
	}

	audit, err := logging.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer audit.Close()

	entries, err := audit.Recent(*last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		audit.Close()
		os.Exit(1)
	}
	if *hairstyle != "" {
		entries = filterHairstyle(entries, *hairstyle)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no resolutions found")
		return
	}

	if *byRange {
		err = runRangeMode(entries, *jsonOut)
	} else {
		err = runListMode(entries, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		audit.Close()
		os.Exit(1)
	}
}

func filterHairstyle(entries []logging.ResolutionEntry, h string) []logging.ResolutionEntry {
	var out []logging.ResolutionEntry
	for _, e := range entries {
		if e.Hairstyle == h {
			out = append(out, e)
		}
	}
	return out
}

// #endregion main

// #region list-mode

type listRow struct {
	ID         string `json:"id"`
	Hairstyle  string `json:"hairstyle"`
	Tag        string `json:"tag"`
	Percentage int    `json:"percentage"`
	Range      string `json:"range,omitempty"`
	Chosen     string `json:"chosen"`
	Catalog    string `json:"catalog_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func runListMode(entries []logging.ResolutionEntry, jsonOut bool) error {
	// store returns DESC, reverse for chronological
	rows := make([]listRow, len(entries))
	for i, e := range entries {
		rows[len(entries)-1-i] = listRow{
			ID:         e.ID,
			Hairstyle:  e.Hairstyle,
			Tag:        e.Tag,
			Percentage: e.Percentage,
			Range:      e.RangeName,
			Chosen:     e.Chosen,
			Catalog:    e.CatalogID,
			CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %-28s  %-7s  %4s  %-10s  %-24s  %s\n",
		"ID", "Hairstyle", "Tag", "Pct", "Range", "Chosen", "Time")
	fmt.Printf("%-10s+-%-28s+-%-7s+-%4s+-%-10s+-%-24s+-%s\n",
		"----------", "----------------------------", "-------", "----", "----------", "------------------------", "--------------------")
	for _, r := range rows {
		rng := r.Range
		if rng == "" {
			rng = "-"
		}
		fmt.Printf("%-10s  %-28s  %-7s  %4d  %-10s  %-24s  %s\n",
			shortID(r.ID), r.Hairstyle, r.Tag, r.Percentage, rng, r.Chosen, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region range-mode

type rangeRow struct {
	Range  string         `json:"range"`
	Count  int            `json:"count"`
	Chosen map[string]int `json:"chosen"`
}

func runRangeMode(entries []logging.ResolutionEntry, jsonOut bool) error {
	byName := map[string]*rangeRow{}
	for _, e := range entries {
		name := e.RangeName
		if name == "" {
			name = "-"
		}
		r, ok := byName[name]
		if !ok {
			r = &rangeRow{Range: name, Chosen: map[string]int{}}
			byName[name] = r
		}
		r.Count++
		r.Chosen[e.Chosen]++
	}

	rows := make([]rangeRow, 0, len(byName))
	for _, r := range byName {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Range < rows[j].Range })

	if jsonOut {
		return printJSON(rows)
	}

	for _, r := range rows {
		fmt.Printf("%s (%d)\n", r.Range, r.Count)
		groups := make([]string, 0, len(r.Chosen))
		for g := range r.Chosen {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		for _, g := range groups {
			fmt.Printf("  %-32s %d\n", g, r.Chosen[g])
		}
	}
	return nil
}

// #endregion range-mode

// #region helpers

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
