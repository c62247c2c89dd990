package main

import (
	"fmt"

	"github.com/sagarc03/assetry"
	"github.com/sagarc03/assetry/config"
	"github.com/sagarc03/assetry/filesystem"
)

// newService builds the asset service and its registries from cfg.
func newService(cfg *config.Config) (*assetry.AssetService, *assetry.TypeRegistry, error) {
	if err := cfg.RequireHosts(); err != nil {
		return nil, nil, err
	}

	hosts, err := assetry.NewHostRegistry(cfg.Hosts)
	if err != nil {
		return nil, nil, fmt.Errorf("hosts: %w", err)
	}

	types, err := assetry.NewTypeRegistry(cfg.FileTypes)
	if err != nil {
		return nil, nil, fmt.Errorf("file types: %w", err)
	}

	service, err := assetry.NewAssetService(hosts, types, filesystem.NewResolver())
	if err != nil {
		return nil, nil, fmt.Errorf("create service: %w", err)
	}

	return service, types, nil
}
