package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. PULSE_SERVER_PORT
const EnvPrefix = "PULSE"

// ConfigFileEnv names an explicit configuration file
const ConfigFileEnv = "PULSE_CONFIG_FILE"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" split_words:"true" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true" validate:"gte=0"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" split_words:"true" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" split_words:"true"`
	RPS     float64 `yaml:"rps" split_words:"true" validate:"gte=0"`
	Burst   int     `yaml:"burst" split_words:"true" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" split_words:"true"`
	Output      string `yaml:"output" split_words:"true"`
	FilePath    string `yaml:"file_path" split_words:"true"`
	Development bool   `yaml:"development" split_words:"true"`
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" split_words:"true" validate:"required"`
	TraceStdout    bool   `yaml:"trace_stdout" split_words:"true"`
	MetricsEnabled bool   `yaml:"metrics_enabled" split_words:"true"`
}

// DatasetConfig locates the purchasing dataset and maps its columns
type DatasetConfig struct {
	Path      string        `yaml:"path" split_words:"true" validate:"required"`
	Sheet     string        `yaml:"sheet" split_words:"true"`
	Delimiter string        `yaml:"delimiter" split_words:"true" validate:"omitempty,len=1"`
	Columns   ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
}

// Comma returns the CSV delimiter as a rune; zero means the default comma
func (d DatasetConfig) Comma() rune {
	if d.Delimiter == "" {
		return 0
	}
	return []rune(d.Delimiter)[0]
}

// ColumnsConfig names the ten required columns of the dataset. Its fields
// mirror dataprocessing.Columns so one converts directly into the other.
type ColumnsConfig struct {
	OrderDate        string `yaml:"order_date" split_words:"true" validate:"required"`
	InvoiceEntryDate string `yaml:"invoice_entry_date" split_words:"true" validate:"required"`
	ShipmentDate     string `yaml:"shipment_date" split_words:"true" validate:"required"`
	TotalValue       string `yaml:"total_value" split_words:"true" validate:"required"`
	Plant            string `yaml:"plant" split_words:"true" validate:"required"`
	AutomationFlag   string `yaml:"automation_flag" split_words:"true" validate:"required"`
	SupplierName     string `yaml:"supplier_name" split_words:"true" validate:"required"`
	OrderID          string `yaml:"order_id" split_words:"true" validate:"required"`
	OrderLineID      string `yaml:"order_line_id" split_words:"true" validate:"required"`
	PurchasingGroup  string `yaml:"purchasing_group" split_words:"true" validate:"required"`
}

// DashboardConfig tunes the aggregates and the HTML page
type DashboardConfig struct {
	Title           string `yaml:"title" split_words:"true"`
	TopN            int    `yaml:"top_n" split_words:"true" validate:"min=1,max=100"`
	AutomaticMarker string `yaml:"automatic_marker" split_words:"true" validate:"required"`
	CurrencySymbol  string `yaml:"currency_symbol" split_words:"true" validate:"required"`
	AssetsHost      string `yaml:"assets_host" split_words:"true" validate:"omitempty,url"`
	ExportDir       string `yaml:"export_dir" split_words:"true"`
}

// Load builds the configuration from defaults, the first config file found
// and PULSE_* environment variables, in increasing order of precedence
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file; an empty path skips the file
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = validator.New()

// validate normalises the logging section and checks every constraint
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	switch c.Logging.Format {
	case "json", "text":
	default:
		c.Logging.Format = "json"
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" when there is none
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "procurepulse",
			MetricsEnabled: true,
		},
		Dataset: DatasetConfig{
			Path: "Base BI.csv",
			Columns: ColumnsConfig{
				OrderDate:        "Data do pedido",
				InvoiceEntryDate: "Data Entrada NF",
				ShipmentDate:     "Data de Remessa",
				TotalValue:       "Valor total. USD",
				Plant:            "Planta",
				AutomationFlag:   "Automação",
				SupplierName:     "Nome do fornecedor",
				OrderID:          "Pedido",
				OrderLineID:      "Item do pedido",
				PurchasingGroup:  "Grupo de compras",
			},
		},
		Dashboard: DashboardConfig{
			Title:           "Dashboard de Compras",
			TopN:            10,
			AutomaticMarker: "A",
			CurrencySymbol:  "$",
			ExportDir:       "reports",
		},
	}
}
