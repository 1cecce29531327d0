package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	JWT       JWTConfig
	Session   SessionConfig
	Drafts    DraftConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Printer   PrinterConfig
	Inventory InventoryConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points at the REST API that owns all persisted data.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

type DraftConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	// MergeByDefault controls whether adding a product already in the cart bumps its quantity.
	MergeByDefault bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// StoreConfig holds the branding printed on receipts.
type StoreConfig struct {
	Name       string
	Tagline    string
	Phone      string
	Address    string
	Hours      string
	WebsiteURL string
	Currency   string
	Footer     string
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

type InventoryConfig struct {
	LowStockThreshold int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "sanabel-elkhair")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_API_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SESSION_CLEANUP_MINUTES", 5)
	viper.SetDefault("DRAFT_TTL_MINUTES", 240)
	viper.SetDefault("DRAFT_CLEANUP_MINUTES", 10)
	viper.SetDefault("DRAFT_MERGE_BY_DEFAULT", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("STORE_NAME", "Sanabel")
	viper.SetDefault("STORE_TAGLINE", "Sanabel El Khair Market")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_HOURS", "")
	viper.SetDefault("STORE_WEBSITE_URL", "https://www.sanabelkhair.com/")
	viper.SetDefault("STORE_CURRENCY", "EGP")
	viper.SetDefault("STORE_FOOTER", "Thank you for shopping with us")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_API_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Session: SessionConfig{
			TTL:             time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CleanupInterval: time.Duration(viper.GetInt("SESSION_CLEANUP_MINUTES")) * time.Minute,
		},
		Drafts: DraftConfig{
			TTL:             time.Duration(viper.GetInt("DRAFT_TTL_MINUTES")) * time.Minute,
			CleanupInterval: time.Duration(viper.GetInt("DRAFT_CLEANUP_MINUTES")) * time.Minute,
			MergeByDefault:  viper.GetBool("DRAFT_MERGE_BY_DEFAULT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Store: StoreConfig{
			Name:       viper.GetString("STORE_NAME"),
			Tagline:    viper.GetString("STORE_TAGLINE"),
			Phone:      viper.GetString("STORE_PHONE"),
			Address:    viper.GetString("STORE_ADDRESS"),
			Hours:      viper.GetString("STORE_HOURS"),
			WebsiteURL: viper.GetString("STORE_WEBSITE_URL"),
			Currency:   viper.GetString("STORE_CURRENCY"),
			Footer:     viper.GetString("STORE_FOOTER"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		},
	}
}

// IsDevelopment reports whether verbose development behaviour should be enabled.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}
