package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/adjust-mcp/internal/adjust"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ErrMissingToken is returned when no Adjust token can be resolved from
// flags, environment or positional arguments.
var ErrMissingToken = adjust.ErrMissingToken

// Settings is the resolved process configuration handed to constructors.
type Settings struct {
	Token       string
	BaseURL     string
	LogLevel    string
	HTTPTimeout time.Duration
	PresetsFile string
	Transport   string
	HTTPAddr    string
}

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		flags := root.PersistentFlags()
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				_ = viper.BindPFlag(key, f)
			}
		}
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyBaseURL, "https://automate.adjust.com")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHTTPTimeout, "60s")
	viper.SetDefault(KeyTransport, TransportStdio)
	viper.SetDefault(KeyHTTPAddr, "127.0.0.1:8080")
}

func AuthToken() string   { return strings.TrimSpace(viper.GetString(KeyAuthToken)) }
func BaseURL() string     { return viper.GetString(KeyBaseURL) }
func LogLevel() string    { return viper.GetString(KeyLogLevel) }
func HTTPTimeout() string { return viper.GetString(KeyHTTPTimeout) }
func PresetsFile() string { return viper.GetString(KeyPresetsFile) }
func Transport() string   { return strings.ToLower(viper.GetString(KeyTransport)) }
func HTTPAddr() string    { return viper.GetString(KeyHTTPAddr) }

// Load resolves Settings from viper. The token falls back to the first
// positional argument when neither the flag nor the environment carries one.
func Load(args []string) (Settings, error) {
	token := AuthToken()
	if token == "" && len(args) > 0 {
		token = strings.TrimSpace(args[0])
	}
	if token == "" {
		return Settings{}, ErrMissingToken
	}

	timeout, err := parseDuration(HTTPTimeout(), 60*time.Second)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", KeyHTTPTimeout, err)
	}

	transport := Transport()
	switch transport {
	case TransportStdio, TransportHTTP:
	default:
		return Settings{}, fmt.Errorf("invalid %s %q: must be %s or %s", KeyTransport, transport, TransportStdio, TransportHTTP)
	}

	return Settings{
		Token:       token,
		BaseURL:     BaseURL(),
		LogLevel:    LogLevel(),
		HTTPTimeout: timeout,
		PresetsFile: PresetsFile(),
		Transport:   transport,
		HTTPAddr:    HTTPAddr(),
	}, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", trimmed)
	}
	return d, nil
}
