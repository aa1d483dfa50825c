package runner

var (
	// DebugPProf exposes the `net/http/pprof` handlers under
	// `UrlPathPrefixDebug`.
	DebugPProf bool = false

	// EnableJSONRPC serves the read-only storage inspection under
	// `UrlPathPrefixRPC`.
	EnableJSONRPC bool = false
)

const (
	UrlPathPrefixDebug  = "/debug"
	UrlPathPrefixMetric = "/metrics"
	UrlPathPrefixRPC    = "/jsonrpc"
)
