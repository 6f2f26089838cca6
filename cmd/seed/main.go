// Command main provisions the operator account and, optionally, demo content.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/seed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	demo := flag.Int("demo", 0, "Number of demo projects and articles to create")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "Random seed for demo content")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SkipTracing: true})
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	ctx := context.Background()
	created, err := seed.EnsureAdmin(ctx, rt.DB, seed.AdminOptions{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	})
	if err != nil {
		return err
	}
	if created {
		log.Printf("admin user %s created", cfg.AdminEmail)
	} else {
		log.Printf("admin user %s already exists, left unchanged", cfg.AdminEmail)
	}

	if *demo > 0 {
		if err := seed.NewFactory(rt.DB, rt.Cache, *seedValue).Demo(ctx, *demo); err != nil {
			return err
		}
		log.Printf("created %d demo projects and %d demo articles", *demo, *demo)
	}
	return nil
}
