package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/assetry"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("resolve: %w", assetry.ErrUnknownHost), want: http.StatusBadRequest},
		{err: fmt.Errorf("resolve: %w", assetry.ErrTraversal), want: http.StatusNotFound},
		{err: fmt.Errorf("resolve: %w", assetry.ErrUnsupportedType), want: http.StatusNotFound},
		{err: fmt.Errorf("resolve: %w", assetry.ErrReadRace), want: http.StatusNotFound},
		{err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestPrintResolution(t *testing.T) {
	var buf bytes.Buffer
	err := printResolution(&buf, resolution{
		Host:        "example.com",
		Root:        "/srv/www/",
		RequestPath: "/",
		LogicalPath: "/index.html",
		File:        "/srv/www/index.html.br",
		ContentType: "text/html",
		Encoding:    "br",
		Size:        42,
		Status:      http.StatusOK,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "logical path:  /index.html")
	assert.Contains(t, out, "encoding:      br")
	assert.Contains(t, out, "status:        200 OK")
	assert.NotContains(t, out, "error:")
}

func TestPrintResolution_Error(t *testing.T) {
	var buf bytes.Buffer
	err := printResolution(&buf, resolution{
		Host:        "evil.example.com",
		RequestPath: "/",
		Status:      http.StatusBadRequest,
		Error:       "unknown host",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "400 Bad Request")
	assert.Contains(t, out, "unknown host")
	assert.NotContains(t, out, "root:")
}
