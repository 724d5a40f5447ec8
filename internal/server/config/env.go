package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvGRPCAddr        = "GOPHNOTES_GRPC_ADDR"
	EnvMetricsAddr     = "GOPHNOTES_METRICS_ADDR"
	EnvDatabaseDSN     = "GOPHNOTES_DATABASE_DSN"
	EnvSecretKey       = "GOPHNOTES_SECRET_KEY"
	EnvAccessTokenTTL  = "GOPHNOTES_ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL = "GOPHNOTES_REFRESH_TOKEN_TTL"
)

// parseEnv loads the given dotenv files (".env" when none is given) into the
// process environment and overlays Config with GOPHNOTES_* variables.
// Variables already present in the environment win over the file, a missing
// file is not an error. Malformed files and durations panic, like the other
// loaders.
func parseEnv(cfg *Config, files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.EndpointAddrGRPC, EnvGRPCAddr)
	setString(&cfg.MetricsAddr, EnvMetricsAddr)
	setString(&cfg.DatabaseDSN, EnvDatabaseDSN)
	setString(&cfg.SecretKey, EnvSecretKey)
	setDuration(&cfg.AccessTokenValidityDuration, EnvAccessTokenTTL)
	setDuration(&cfg.RefreshTokenValidityDuration, EnvRefreshTokenTTL)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
