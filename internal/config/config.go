package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Loyalty  LoyaltyConfig
	Chat     ChatConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// Loyalty accrual modes
const (
	AccrualOnCheckout   = "checkout"
	AccrualOnCompletion = "completion"
)

// LoyaltyConfig holds the loyalty program constants. The divisor and
// thresholds are configuration, not literals: one point per 10,000 ₫
// spent, Gold at 10M ₫ lifetime spending, VIP at 50M ₫.
type LoyaltyConfig struct {
	PointsDivisor int64
	GoldThreshold int64
	VIPThreshold  int64
	// AccrualMode selects when an order credits points and spending:
	// at checkout, or when an admin completes the order. Either way
	// the credit fires at most once per order.
	AccrualMode string
	// StrictVouchers rejects a checkout that applies a voucher code
	// the caller does not hold unused; when false the code is
	// silently ignored and the full subtotal stands.
	StrictVouchers bool
}

// ChatConfig holds the chat concierge configuration
type ChatConfig struct {
	GeminiAPIKey string
	Model        string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Loyalty:  loadLoyaltyConfig(),
		Chat:     loadChatConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "istore"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadLoyaltyConfig loads the loyalty program constants
func loadLoyaltyConfig() LoyaltyConfig {
	divisor, _ := strconv.ParseInt(getEnv("LOYALTY_POINTS_DIVISOR", "10000"), 10, 64)
	gold, _ := strconv.ParseInt(getEnv("LOYALTY_GOLD_THRESHOLD", "10000000"), 10, 64)
	vip, _ := strconv.ParseInt(getEnv("LOYALTY_VIP_THRESHOLD", "50000000"), 10, 64)
	strict, _ := strconv.ParseBool(getEnv("LOYALTY_STRICT_VOUCHERS", "false"))

	mode := getEnv("LOYALTY_ACCRUAL_MODE", AccrualOnCheckout)
	if mode != AccrualOnCheckout && mode != AccrualOnCompletion {
		log.Printf("⚠️ Invalid LOYALTY_ACCRUAL_MODE '%s', falling back to '%s'", mode, AccrualOnCheckout)
		mode = AccrualOnCheckout
	}

	return LoyaltyConfig{
		PointsDivisor:  divisor,
		GoldThreshold:  gold,
		VIPThreshold:   vip,
		AccrualMode:    mode,
		StrictVouchers: strict,
	}
}

// loadChatConfig loads the chat concierge config
func loadChatConfig() ChatConfig {
	return ChatConfig{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		Model:        getEnv("CHAT_MODEL", "gemini-1.5-flash"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://store.istore.vn"
	}
	return origins
}
