// Package storefront parses storefront command flags and starts the shop
// web server.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/nexshop/storefront/internal/auth"
	cartstorage "github.com/nexshop/storefront/internal/cart/storage"
	cartsqlite "github.com/nexshop/storefront/internal/cart/storage/sqlite"
	"github.com/nexshop/storefront/internal/catalog"
	"github.com/nexshop/storefront/internal/catalog/cache"
	"github.com/nexshop/storefront/internal/catalog/fakestore"
	"github.com/nexshop/storefront/internal/commerce"
	entrypoint "github.com/nexshop/storefront/internal/platform/cmd"
	"github.com/nexshop/storefront/internal/web"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr       string `env:"NEXSHOP_HTTP_ADDR" envDefault:"localhost:8080"`
	CatalogBaseURL string `env:"NEXSHOP_CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	CartDBPath     string `env:"NEXSHOP_CART_DB_PATH" envDefault:"nexshop.db"`
	RedisAddr      string `env:"NEXSHOP_REDIS_ADDR"`
	SessionSecret  string `env:"NEXSHOP_SESSION_SECRET" envDefault:"dev-only-secret"`
}

// ParseConfig parses environment and flags into a Config. Environment
// values provide the defaults; explicit flags override them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "HTTP listen address")
	fs.StringVar(&cfg.CatalogBaseURL, "catalog-base-url", "", "Upstream catalog API base URL")
	fs.StringVar(&cfg.CartDBPath, "cart-db", "", "SQLite cart database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address for catalog caching (empty disables)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the storefront web server.
func Run(ctx context.Context, cfg Config) error {
	source, err := fakestore.New(cfg.CatalogBaseURL)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	var catalogSource catalog.Source = source
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		cached := cache.New(catalogSource, rdb, cache.DefaultTTL)
		if err := cached.Ping(ctx); err != nil {
			log.Printf("redis unreachable, caching degraded: %v", err)
		}
		catalogSource = cached
	}

	var store cartstorage.CartStore
	db, err := cartsqlite.Open(cfg.CartDBPath)
	if err != nil {
		return fmt.Errorf("open cart database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("close cart database: %v", err)
		}
	}()
	store = db

	sessions, err := auth.NewManager(cfg.SessionSecret)
	if err != nil {
		return fmt.Errorf("init session manager: %w", err)
	}

	registry := commerce.NewRegistry(catalogSource, store)

	server, err := web.NewServer(web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Registry: registry,
		Sessions: sessions,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorefront, func(ctx context.Context) error {
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve storefront: %w", err)
		}
		return nil
	})
}
