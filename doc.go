// Package assetry resolves HTTP requests for many hostnames to pre-built,
// pre-compressed static files on local disk.
//
// A request passes through a fixed pipeline. Any stage may end it:
//
//  1. Host lookup against the configured hosts (ErrUnknownHost)
//  2. Logical path mapping: branch prefix and the /, /editor and
//     /fullscreen entry points
//  3. Safe join of the logical path under the host root
//     (ErrInvalidCharacters, ErrTraversal)
//  4. File resolution with index.html fallback for directories (ErrNotFound)
//  5. File type lookup by extension (ErrUnsupportedType)
//  6. Encoding negotiation against pre-built variants such as app.js.br
//  7. Full read of the chosen file (ErrReadRace)
//
// Every failure after host lookup belongs to one not-found class; see
// IsNotFound. The server never compresses on the fly; the precompress
// package builds the variants ahead of time.
//
// # Example Usage
//
//	hosts, err := assetry.NewHostRegistry([]assetry.HostConfig{
//	    {Hostname: "example.com", Root: "/srv/www/example.com"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	types, err := assetry.NewTypeRegistry(assetry.DefaultFileTypes())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service, err := assetry.NewAssetService(hosts, types, filesystem.NewResolver())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	asset, err := service.Resolve(ctx, "example.com", "/editor", "br, gzip")
//
// See the http package for the HTTP handler and the filesystem package for
// the disk-backed FileSystem.
package assetry
