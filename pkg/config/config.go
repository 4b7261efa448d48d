package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CATALOG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "CATALOG_APP_ENV"
	EnvPort       = "CATALOG_APP_PORT"
	EnvAPIBaseURL = "CATALOG_API_BASE_URL"
	EnvRedisURL   = "CATALOG_REDIS_URL"
	EnvPageSize   = "CATALOG_DASHBOARD_PAGE_SIZE"
)

type Config struct {
	App       AppConfig
	API       CatalogAPIConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_APP_PORT" default:"8090"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"CATALOG_LOG_FORMAT"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogAPIConfig locates the remote REST collections.
type CatalogAPIConfig struct {
	BaseURL               string        `envconfig:"CATALOG_API_BASE_URL" default:"http://localhost:8080/api"`
	Timeout               time.Duration `envconfig:"CATALOG_API_TIMEOUT" default:"10s"`
	MaxConcurrentDeletes  int           `envconfig:"CATALOG_API_MAX_CONCURRENT_DELETES" default:"8"`
	ProductsPath          string        `envconfig:"CATALOG_API_PRODUCTS_PATH" default:"/products"`
	ProductItemPath       string        `envconfig:"CATALOG_API_PRODUCT_ITEM_PATH" default:"/products/sku/{id}"`
	ProductsBulkPath      string        `envconfig:"CATALOG_API_PRODUCTS_BULK_PATH" default:"/products/bulk"`
	PromotionsPath        string        `envconfig:"CATALOG_API_PROMOTIONS_PATH" default:"/promotions"`
	PromotionItemPath     string        `envconfig:"CATALOG_API_PROMOTION_ITEM_PATH" default:"/promotions/{id}"`
	PromotionsBulkPath    string        `envconfig:"CATALOG_API_PROMOTIONS_BULK_PATH" default:"/promotions/bulk"`
	ActiveCategoriesPath  string        `envconfig:"CATALOG_API_ACTIVE_CATEGORIES_PATH" default:"/categories/active"`
	ResponseBodyReadLimit int64         `envconfig:"CATALOG_API_ERROR_BODY_LIMIT" default:"1024"`
}

func (c CatalogAPIConfig) validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvAPIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvAPIBaseURL, c.BaseURL)
	}
	for name, p := range map[string]string{
		"product item":   c.ProductItemPath,
		"promotion item": c.PromotionItemPath,
	} {
		if !strings.Contains(p, "{id}") {
			return fmt.Errorf("%s path %q must contain {id}", name, p)
		}
	}
	return nil
}

type DashboardConfig struct {
	PageSize      int `envconfig:"CATALOG_DASHBOARD_PAGE_SIZE" default:"4"`
	NoticeHistory int `envconfig:"CATALOG_NOTICE_HISTORY" default:"50"`
}

// RedisConfig backs the optional category cache. An empty URL and address disables it.
type RedisConfig struct {
	URL              string        `envconfig:"CATALOG_REDIS_URL"`
	Address          string        `envconfig:"CATALOG_REDIS_ADDR"`
	Password         string        `envconfig:"CATALOG_REDIS_PASSWORD"`
	DB               int           `envconfig:"CATALOG_REDIS_DB" default:"0"`
	PoolSize         int           `envconfig:"CATALOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns     int           `envconfig:"CATALOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout      time.Duration `envconfig:"CATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout      time.Duration `envconfig:"CATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout     time.Duration `envconfig:"CATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
	CategoryCacheTTL time.Duration `envconfig:"CATALOG_CATEGORY_CACHE_TTL" default:"5m"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CATALOG_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
