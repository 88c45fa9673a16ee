package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielpatrickdp/hairfallback/internal/assetrpc"
	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
	"github.com/danielpatrickdp/hairfallback/internal/config"
)

// #region main
func main() {
	var over config.Config
	flag.StringVar(&over.ListenAddr, "listen", "", "listen address (default $HAIRFALLBACK_LISTEN_ADDR)")
	flag.StringVar(&over.AssetRoot, "assets", "", "asset directory (default $HAIRFALLBACK_ASSET_ROOT)")
	flag.StringVar(&over.AssetDB, "asset-db", "", "SQLite asset pack (overrides -assets)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg = cfg.Merge(over)

	var store assetstore.Store
	if cfg.AssetDB != "" {
		db, err := assetstore.OpenSQLite(cfg.AssetDB)
		if err != nil {
			log.Fatalf("failed to open asset pack: %v", err)
		}
		defer db.Close()
		store = db
		log.Printf("serving asset pack %s", cfg.AssetDB)
	} else {
		store = assetstore.NewDirStore(cfg.AssetRoot)
		log.Printf("serving asset directory %s", cfg.AssetRoot)
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.ListenAddr, err)
	}

	srv, hs := assetrpc.NewServer(store)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutting down")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	log.Printf("asset service listening on %s", lis.Addr())
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// #endregion main
