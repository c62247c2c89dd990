// Package http serves assetry assets over HTTP.
//
// The router accepts GET (and HEAD) on every path, resolves the request host
// and path through an assetry.AssetService, and writes the asset with its
// caching and content negotiation headers.
//
// # Responses
//
//   - 200 with the full body and Content-Type, Last-Modified, Content-Encoding
//     (when a pre-built variant was chosen), Vary and Cache-Control headers
//   - 304 when If-None-Match or If-Modified-Since shows the client copy is current
//   - 400 "Invalid Host" for hosts without a configured root
//   - 404 "404 Not Found" for every not-found class failure; the cause is
//     never revealed to the client
//   - 500 "Internal server error" for anything else, including panics
//
// # Cache-Control
//
// CacheControlMiddleware sets Cache-Control for configured path prefixes
// before the handler runs. The handler keeps a header set this way and
// defaults to "no-cache" otherwise:
//
//	handlerCfg := http.HandlerConfig{
//	    CachePolicies: http.DefaultCachePolicies(),
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":8888", handler.Router())
//
// # Logging
//
// Internal error details are logged only when HandlerConfig.Production is
// false. Not-found causes are logged at debug level.
package http
