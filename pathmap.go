package assetry

import (
	"regexp"
)

var branchPrefixRegex = regexp.MustCompile(`^/([\w-]+)/`)

// routeAlias rewrites a whole remaining path to a fixed entry point.
type routeAlias struct {
	pattern *regexp.Regexp
	target  string
}

// routeAliases are tried in order; "/" must be tested before the named
// entry points.
var routeAliases = []routeAlias{
	{pattern: regexp.MustCompile(`^/(\d+/?)?$`), target: "index.html"},
	{pattern: regexp.MustCompile(`(?i)^/(\d+/)?editor/?$`), target: "editor.html"},
	{pattern: regexp.MustCompile(`(?i)^/(\d+/)?fullscreen/?$`), target: "fullscreen.html"},
}

// MapLogicalPath rewrites a request path into the logical path used for file
// lookup. When branches are enabled a leading segment is taken as the branch
// prefix and kept in front of any alias target. Paths that match no alias are
// returned unchanged.
func MapLogicalPath(requestPath string, branches bool) string {
	prefix := ""
	rest := requestPath

	if branches {
		if m := branchPrefixRegex.FindStringSubmatch(requestPath); m != nil {
			prefix = "/" + m[1]
			rest = requestPath[len(prefix):]
		}
	}

	for _, alias := range routeAliases {
		if alias.pattern.MatchString(rest) {
			return prefix + "/" + alias.target
		}
	}

	return requestPath
}

// MapRequest is the path mapping stage of the pipeline.
func MapRequest(rc RequestContext) RequestContext {
	return rc.WithLogicalPath(MapLogicalPath(rc.RequestPath, rc.Host.Branches))
}
