package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

func main() {
	var (
		dir     = flag.String("dir", "constants", "directory to write the dotaconstants JSON files to")
		baseURL = flag.String("base-url", "", "override source URL for the constants build files")
		force   = flag.Bool("force", false, "re-download files that already exist")
		sleepMS = flag.Int("sleep-ms", 250, "sleep between downloads in ms")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := refdata.NewSyncer(*dir)
	s.Force = *force
	s.Sleep = time.Duration(*sleepMS) * time.Millisecond
	if *baseURL != "" {
		s.BaseURL = *baseURL
	}

	if err := s.Sync(ctx); err != nil {
		log.Fatal(err)
	}

	catalog := refdata.Load(*dir)
	log.Printf("catalog loaded: %d heroes, %d items", len(catalog.Heroes()), len(catalog.Items()))
}
