// Package precompress builds the pre-encoded file variants served by assetry.
//
// Variants are written next to their base file as <file>.<suffix>, one per
// encoding listed for the file's type. Supported codings are br, gzip, zstd
// and deflate. A variant is skipped when it would not be smaller than the
// base file, and left alone when it is newer than the base file unless
// Options.Force is set.
//
//	c, err := precompress.New(types, precompress.Options{MinSize: 256, Workers: 4})
//	if err != nil {
//	    return err
//	}
//	stats, err := c.Roots(ctx, hosts.Roots())
package precompress
