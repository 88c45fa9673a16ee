package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
)

// #region main
func main() {
	dir := flag.String("dir", "", "asset directory to import")
	dbPath := flag.String("db", "", "SQLite asset pack to create or update")
	list := flag.Bool("list", false, "list packed paths after importing")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: packassets --db assets.db [--dir Textures] [--list]")
		os.Exit(2)
	}

	store, err := assetstore.OpenSQLite(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *dir != "" {
		n, err := store.Import(*dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("packed %d images from %s into %s\n", n, *dir, *dbPath)
	}

	if *list {
		paths, err := store.Paths(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	}
}

// #endregion main
