package cli

import (
	"os"

	"github.com/vvka-141/kvload/internal/config"
	"github.com/vvka-141/kvload/internal/store"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// storeFlags holds the store address flag values.
type storeFlags struct {
	url  string
	host string
	port int
	db   int

	// granular is true when any of --host, --port or --db was given.
	granular bool
}

// storeURLFromEnv returns the first non-empty store URL from
// KVLOAD_STORE_URL or REDIS_URL environment variables.
func storeURLFromEnv() string {
	if s := os.Getenv("KVLOAD_STORE_URL"); s != "" {
		return s
	}
	return os.Getenv("REDIS_URL")
}

// resolveStoreURL picks the store address.
//
// Precedence: --store > --host/--port/--db > $KVLOAD_STORE_URL > $REDIS_URL >
// kvload.yaml store.url > kvload.yaml store.host/port/db > redis://localhost:6379/0.
// The second return value names the source for verbose output.
func resolveStoreURL(flags storeFlags, projectCfg *config.ProjectConfig) (string, string) {
	if flags.url != "" {
		return flags.url, "--store flag"
	}
	if flags.granular {
		return store.BuildRedisURL(flags.host, flags.port, flags.db), "--host/--port/--db flags"
	}
	if s := storeURLFromEnv(); s != "" {
		return s, "environment"
	}
	if projectCfg != nil {
		if projectCfg.Store.URL != "" {
			return projectCfg.Store.URL, config.ConfigFileName + " store.url"
		}
		if projectCfg.Store.HasAddress() {
			s := projectCfg.Store
			return store.BuildRedisURL(s.Host, s.Port, s.DB), config.ConfigFileName + " store.host/port/db"
		}
	}
	return kvload.DefaultStoreURL, "default"
}
