package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/hairfallback/internal/config"
	"github.com/danielpatrickdp/hairfallback/internal/hair"
	"github.com/danielpatrickdp/hairfallback/internal/replay"
)

// #region main

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string) int {
	flags := flag.NewFlagSet("resolve", flag.ContinueOnError)
	var over config.Config
	fixturePath := flags.String("fixture", "", "path to replay fixture JSON")
	jsonOut := flags.Bool("json", false, "output as JSON instead of table")
	flags.StringVar(&over.Strategy, "strategy", "", "strict | fallback (default $HAIRFALLBACK_STRATEGY)")
	flags.StringVar(&over.CatalogPath, "catalog", "", "fallback catalog YAML (default $HAIRFALLBACK_CATALOG)")
	flags.StringVar(&over.AssetRoot, "assets", "", "asset directory (default $HAIRFALLBACK_ASSET_ROOT)")
	flags.StringVar(&over.AssetDB, "asset-db", "", "SQLite asset pack (overrides -assets)")
	flags.StringVar(&over.AssetAddr, "asset-addr", "", "remote asset service address (overrides -asset-db)")
	flags.StringVar(&over.ScanPolicy, "scan", "", "center | band (default $HAIRFALLBACK_SCAN_POLICY)")
	flags.StringVar(&over.AuditDB, "audit-db", "", "record computed fallbacks in this SQLite file")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: resolve --fixture cases.json [--strategy fallback] [--catalog fallbacks.yaml] [--assets dir] [--json]")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	cfg = cfg.Merge(over)

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	svc, err := hair.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		return 1
	}
	defer svc.Close()

	results := replay.Replay(context.Background(), svc, fixture)
	summary := replay.Summarize(results)

	if *jsonOut {
		if err := printJSON(map[string]any{"results": results, "summary": summary}); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	} else {
		printTable(fixture.Description, results, summary)
	}

	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// #endregion main

// #region output

func printTable(description string, results []replay.CaseResult, s replay.Summary) {
	if description != "" {
		fmt.Println(description)
	}
	fmt.Printf("%-12s  %-16s  %-8s  %-4s  %s\n", "Case", "Variant", "Source", "OK", "Path")
	fmt.Printf("%-12s+-%-16s+-%-8s+-%-4s+-%s\n", "------------", "----------------", "--------", "----", "--------------------")
	for _, r := range results {
		ok := "yes"
		if !r.Passed {
			ok = "NO"
		}
		path := r.Path
		if r.Err != "" {
			path = "error: " + r.Err
		}
		fmt.Printf("%-12s  %-16s  %-8s  %-4s  %s\n", r.ID, r.Variant, r.Source, ok, path)
		if !r.Passed && r.Expected != "" {
			fmt.Printf("%-12s  expected %s\n", "", r.Expected)
		}
	}
	fmt.Printf("\n%d cases: %d passed, %d failed, %d errors, %d computed, %d cached\n",
		s.Total, s.Passed, s.Failed, s.Errors, s.Computed, s.Cached)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion output
