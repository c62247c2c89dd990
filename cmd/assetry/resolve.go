package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetry"
	"github.com/sagarc03/assetry/config"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <host> <path>",
	Short: "Show how a request would be served",
	Long: `Run the resolution pipeline for one request without starting a server
and print every decision: host root, logical path, file on disk, content
type and chosen encoding, or the status the server would answer with.

Examples:
  assetry resolve example.com /
  assetry resolve example.com:8888 /feature-x/editor --accept-encoding "br, gzip"`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

var (
	resolveAcceptEncoding string
	resolveJSON           bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveAcceptEncoding, "accept-encoding", "e", "br, zstd, gzip", "Accept-Encoding header to negotiate against")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(resolveCmd)
}

// resolution is the printable outcome of one resolve run.
type resolution struct {
	Host        string `json:"host"`
	Root        string `json:"root,omitempty"`
	RequestPath string `json:"request_path"`
	LogicalPath string `json:"logical_path,omitempty"`
	File        string `json:"file,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Encoding    string `json:"encoding,omitempty"`
	Size        int    `json:"size,omitempty"`
	Status      int    `json:"status"`
	Error       string `json:"error,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	service, _, err := newService(cfg)
	if err != nil {
		return err
	}

	res := resolution{Host: args[0], RequestPath: args[1], Status: http.StatusOK}

	rc, err := service.NewRequest(args[0], args[1], resolveAcceptEncoding)
	if err == nil {
		rc = assetry.MapRequest(rc)
		res.Root = rc.Root()
		res.LogicalPath = rc.LogicalPath

		var asset assetry.Asset
		asset, err = service.ResolveRequest(cmd.Context(), rc)
		if err == nil {
			res.File = asset.Path
			res.ContentType = asset.ContentType
			res.Encoding = asset.Encoding
			res.Size = len(asset.Body)
		}
	}

	if err != nil {
		res.Status = statusFor(err)
		res.Error = err.Error()
	}

	if resolveJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	return printResolution(cmd.OutOrStdout(), res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, assetry.ErrUnknownHost):
		return http.StatusBadRequest
	case assetry.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func printResolution(w io.Writer, res resolution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][2]string{
		{"host", res.Host},
		{"root", res.Root},
		{"request path", res.RequestPath},
		{"logical path", res.LogicalPath},
		{"file", res.File},
		{"content type", res.ContentType},
		{"encoding", res.Encoding},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	if res.Size > 0 {
		_, _ = fmt.Fprintf(tw, "size:\t%d\n", res.Size)
	}
	_, _ = fmt.Fprintf(tw, "status:\t%d %s\n", res.Status, http.StatusText(res.Status))
	if res.Error != "" {
		_, _ = fmt.Fprintf(tw, "error:\t%s\n", res.Error)
	}

	return tw.Flush()
}
