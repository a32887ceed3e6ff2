package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Order total policies.
const (
	TotalPolicyTrust  = "trust"
	TotalPolicyVerify = "verify"
)

// Config holds everything the API needs at start-up.
// Values come from defaults, then an optional YAML file (CONFIG_FILE), then the environment.
type Config struct {
	Port string `yaml:"port"`

	DBDriver    string `yaml:"db_driver"` // postgres | sqlite
	DatabaseURL string `yaml:"database_url"`
	DBHost      string `yaml:"db_host"`
	DBPort      string `yaml:"db_port"`
	DBUser      string `yaml:"db_user"`
	DBPassword  string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`

	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`

	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	AdminName     string `yaml:"admin_name"`

	UploadsDir    string   `yaml:"uploads_dir"`
	BackupDir     string   `yaml:"backup_dir"`
	PublicBaseURL string   `yaml:"public_base_url"`
	CORSOrigins   []string `yaml:"cors_origins"`

	RedisURL string `yaml:"redis_url"`

	OrderTotalPolicy       string `yaml:"order_total_policy"`
	OrderStrictTransitions bool   `yaml:"order_strict_transitions"`

	TracingExporter string `yaml:"tracing_exporter"` // none | stdout | otlp
	OTLPEndpoint    string `yaml:"otlp_endpoint"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:             "8080",
		DBDriver:         "postgres",
		TokenTTL:         24 * time.Hour,
		BcryptCost:       10,
		AdminName:        "Administrator",
		UploadsDir:       "./uploads",
		CORSOrigins:      []string{"*"},
		OrderTotalPolicy: TotalPolicyTrust,
		TracingExporter:  "none",
		OTLPEndpoint:     "localhost:4317",
	}
}

// Load reads .env (if present), the optional YAML file and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("DB_DRIVER", &c.DBDriver)
	str("DATABASE_URL", &c.DatabaseURL)
	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("JWT_SECRET", &c.JWTSecret)
	str("ADMIN_EMAIL", &c.AdminEmail)
	str("ADMIN_PASSWORD", &c.AdminPassword)
	str("ADMIN_NAME", &c.AdminName)
	str("UPLOADS_DIR", &c.UploadsDir)
	str("BACKUP_DIR", &c.BackupDir)
	str("PUBLIC_BASE_URL", &c.PublicBaseURL)
	str("REDIS_URL", &c.RedisURL)
	str("ORDER_TOTAL_POLICY", &c.OrderTotalPolicy)
	str("TRACING_EXPORTER", &c.TracingExporter)
	str("OTLP_ENDPOINT", &c.OTLPEndpoint)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		c.BcryptCost = n
	}
	if v := os.Getenv("ORDER_STRICT_TRANSITIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ORDER_STRICT_TRANSITIONS %q: %w", v, err)
		}
		c.OrderStrictTransitions = b
	}
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.BcryptCost < 10 {
		return fmt.Errorf("BCRYPT_COST must be at least 10, got %d", c.BcryptCost)
	}
	switch c.OrderTotalPolicy {
	case TotalPolicyTrust, TotalPolicyVerify:
	default:
		return fmt.Errorf("ORDER_TOTAL_POLICY must be %q or %q", TotalPolicyTrust, TotalPolicyVerify)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.TracingExporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("unsupported TRACING_EXPORTER %q", c.TracingExporter)
	}
	return nil
}

// DSN builds the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "sqlite" {
		name := c.DBName
		if name == "" {
			name = "store.db"
		}
		return name
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
