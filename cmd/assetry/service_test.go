package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/assetry"
	"github.com/sagarc03/assetry/config"
)

func TestNewService_RequiresHosts(t *testing.T) {
	_, _, err := newService(&config.Config{FileTypes: assetry.DefaultFileTypes()})
	assert.ErrorIs(t, err, config.ErrNoHosts)
}

func TestNewService(t *testing.T) {
	cfg := &config.Config{
		Hosts:     []assetry.HostConfig{{Hostname: "example.com", Root: t.TempDir()}},
		FileTypes: assetry.DefaultFileTypes(),
	}

	service, types, err := newService(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, service.Hosts().Hosts())
	assert.Equal(t, len(assetry.DefaultFileTypes()), types.Len())
}
