package config

import "time"

// Config holds runtime settings for the gophnotes CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - AutoRefreshInterval: how often the client checks whether the session
//     needs refreshing ahead of its expiry.
//   - DataDir: directory holding the local database and the device key.
type Config struct {
	ServerEndpointAddr  string
	AutoRefreshInterval time.Duration
	DataDir             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AutoRefreshInterval = 30 * time.Second
	c.DataDir = ".gophnotes"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
