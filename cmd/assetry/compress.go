package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sagarc03/assetry"
	"github.com/sagarc03/assetry/config"
	"github.com/sagarc03/assetry/precompress"
)

var compressCmd = &cobra.Command{
	Use:   "compress [root...]",
	Short: "Build pre-encoded variants of served files",
	Long: `Write <file>.<suffix> variants next to every file whose type lists
encodings. Without arguments every configured host root is processed.
With explicit roots no host table is needed.

Variants newer than their base file are left alone unless --force is given.
A variant that would not be smaller than its base file is not written, and
an older variant of a changed base file that is now too small or no longer
compresses is removed so it cannot be served.

Examples:
  # Compress all configured roots
  assetry compress

  # Compress one directory, rewriting existing variants
  assetry compress --force /srv/www/example.com

  # Compress a build directory with no config file at all
  assetry compress ./dist`,
	RunE: runCompress,
}

var (
	compressMinSize int64
	compressForce   bool
	compressDryRun  bool
	compressWorkers int
)

func init() {
	compressCmd.Flags().Int64Var(&compressMinSize, "min-size", 256, "skip files smaller than this many bytes")
	compressCmd.Flags().BoolVarP(&compressForce, "force", "f", false, "rewrite variants that are up to date")
	compressCmd.Flags().BoolVarP(&compressDryRun, "dry-run", "n", false, "report what would be written without writing")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", runtime.NumCPU(), "files compressed in parallel")

	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	types, err := assetry.NewTypeRegistry(cfg.FileTypes)
	if err != nil {
		return fmt.Errorf("file types: %w", err)
	}

	roots := args
	if len(roots) == 0 {
		if err := cfg.RequireHosts(); err != nil {
			return err
		}
		hosts, hostsErr := assetry.NewHostRegistry(cfg.Hosts)
		if hostsErr != nil {
			return fmt.Errorf("hosts: %w", hostsErr)
		}
		roots = hosts.Roots()
	}

	c, err := precompress.New(types, precompress.Options{
		MinSize: compressMinSize,
		Force:   compressForce,
		DryRun:  compressDryRun,
		Workers: compressWorkers,
	})
	if err != nil {
		return err
	}

	slog.Info("compressing", "roots", roots, "encodings", precompress.Encodings(), "dry_run", compressDryRun)

	stats, err := c.Roots(cmd.Context(), roots)
	if err != nil {
		return err
	}

	slog.Info("compress complete",
		"files", stats.Files,
		"written", stats.Written,
		"up_to_date", stats.UpToDate,
		"too_small", stats.Small,
		"not_smaller", stats.NotSmaller,
		"stale_removed", stats.Removed,
		"bytes_in", humanize.Bytes(uint64(stats.BytesIn)),
		"bytes_out", humanize.Bytes(uint64(stats.BytesOut)),
	)
	return nil
}
