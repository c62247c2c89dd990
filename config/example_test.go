package config_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sagarc03/assetry/config"
)

func ExampleLoad() {
	dir, err := os.MkdirTemp("", "assetry-example")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "assetry.yaml")
	content := "hosts:\n  - hostname: example.com\n    root: /srv/www\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load([]string{path}, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Port: %d, Hosts: %d\n", cfg.Server.Port, len(cfg.Hosts))
	// Output: Port: 8888, Hosts: 1
}

func ExampleWithContext() {
	cfg := &config.Config{Server: config.ServerConfig{Port: 8888}}

	// Store config in context
	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved port: %d\n", retrieved.Server.Port)
	// Output: Retrieved port: 8888
}
