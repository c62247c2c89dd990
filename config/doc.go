// Package config provides configuration loading and validation for assetry.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ASSETRY_ prefix, plus PORT)
//  4. CLI flags
//
// Without explicit files, assetry.yaml is looked up in the working directory
// and then in /etc/assetry.
//
// # Usage
//
//	cfg, err := config.Load([]string{"assetry.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// Scalar config keys map to environment variables with ASSETRY_ prefix:
//   - server.port → ASSETRY_SERVER_PORT (PORT is also accepted)
//   - env → ASSETRY_ENV
//   - log.level → ASSETRY_LOG_LEVEL
//
// Hosts, file types and cache policies are lists and can only be set in files.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev or prod, selects the log format and error detail
//   - Server: port and HTTP timeouts
//   - Log: logging level
//   - CORS: cross-origin resource sharing settings
//   - Hosts: hostname, document root and branch flag per served site
//   - FileTypes: extension, MIME type and ordered encodings (built-in table when empty)
//   - CachePolicies: path prefix to Cache-Control value (built-in table when absent)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Unique hostnames and a root for each host; Config.RequireHosts checks
//     that at least one host exists for commands that serve requests
//   - Extensions must start with a dot and be unique
//   - Cache policy prefixes must start with a slash
//   - Log level must be debug, info, warn, or error
package config
