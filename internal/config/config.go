package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. Values come from
// flags, ~/.opendota-mcp.yaml, and OPENDOTA_* environment variables, in
// increasing order of specificity handled by viper.
type Config struct {
	BaseURL        string
	APIKey         string
	RateLimitRPM   int
	RefDataDir     string
	PlayerCache    map[string]string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	Addr        string
	MCPPath     string
	Transport   string
	RequireAuth bool
	AuthHeader  string
	ServerKey   string

	Verbose bool
}

// SetDefaults registers every config default with viper. Called once from
// the root command before flags are bound.
func SetDefaults() {
	viper.SetDefault("opendota.base_url", "https://api.opendota.com/api")
	viper.SetDefault("opendota.rate_limit_rpm", 50)
	viper.SetDefault("opendota.connect_timeout", "10s")
	viper.SetDefault("opendota.read_timeout", "120s")
	viper.SetDefault("refdata.dir", "constants")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.mcp_path", "/mcp")
	viper.SetDefault("server.transport", "http")
	viper.SetDefault("server.require_auth", false)
	viper.SetDefault("server.auth_header", "X-API-Key")
}

// Load materializes a Config from viper's current state.
func Load() *Config {
	viper.SetEnvPrefix("OPENDOTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg := &Config{
		BaseURL:        strings.TrimRight(viper.GetString("opendota.base_url"), "/"),
		APIKey:         viper.GetString("api_key"),
		RateLimitRPM:   viper.GetInt("opendota.rate_limit_rpm"),
		RefDataDir:     viper.GetString("refdata.dir"),
		PlayerCache:    viper.GetStringMapString("players.cache"),
		ConnectTimeout: viper.GetDuration("opendota.connect_timeout"),
		ReadTimeout:    viper.GetDuration("opendota.read_timeout"),
		Addr:           viper.GetString("server.addr"),
		MCPPath:        viper.GetString("server.mcp_path"),
		Transport:      viper.GetString("server.transport"),
		RequireAuth:    viper.GetBool("server.require_auth"),
		AuthHeader:     viper.GetString("server.auth_header"),
		ServerKey:      viper.GetString("server.api_key"),
		Verbose:        viper.GetBool("verbose"),
	}
	if cfg.RateLimitRPM <= 0 {
		cfg.RateLimitRPM = 50
	}
	return cfg
}
