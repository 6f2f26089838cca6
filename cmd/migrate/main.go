// Command migrate runs schema operations for the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SkipTracing: true})
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(rt.DB); err != nil {
			return err
		}
		log.Println("schema migrated")
	case "status":
		for _, table := range database.MissingTables(rt.DB) {
			log.Printf("missing table: %s", table)
		}
		log.Println("schema status checked")
	default:
		return usage()
	}
	return nil
}
