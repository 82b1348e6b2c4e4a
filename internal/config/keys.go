package config

const (
	KeyAuthToken   = "adjust_auth_token"
	KeyBaseURL     = "adjust_base_url"
	KeyLogLevel    = "log_level"
	KeyHTTPTimeout = "http_timeout"
	KeyPresetsFile = "presets_file"
	KeyTransport   = "transport"
	KeyHTTPAddr    = "http_addr"
)

// flagKeys maps persistent flag names to the viper keys they override.
var flagKeys = map[string]string{
	"token":        KeyAuthToken,
	"base-url":     KeyBaseURL,
	"log-level":    KeyLogLevel,
	"http-timeout": KeyHTTPTimeout,
	"presets-file": KeyPresetsFile,
	"transport":    KeyTransport,
	"http-addr":    KeyHTTPAddr,
}
