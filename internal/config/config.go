package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		MonitoringPort     int      `mapstructure:"monitoring_port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	SIGCD struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"sigcd"`

	Atencion struct {
		BaseURL          string `mapstructure:"base_url"`
		CatalogoEndpoint string `mapstructure:"catalogo_endpoint"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"atencion"`

	Backup struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
	} `mapstructure:"backup"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 3002)
	v.SetDefault("server.monitoring_port", 9090)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "clinica_caja")
	v.SetDefault("sigcd.base_url", "https://gestion-citas-wmty.onrender.com")
	v.SetDefault("sigcd.timeout_seconds", 8)
	v.SetDefault("atencion.base_url", "http://apiatencionclinica.rtakabinetsolutions.com/api/atencion")
	v.SetDefault("atencion.catalogo_endpoint", "/integracion/caja/tratamientos")
	v.SetDefault("atencion.timeout_seconds", 8)
	v.SetDefault("backup.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Sibling services from environment
	if base := os.Getenv("SIGCD_BASE_URL"); base != "" {
		cfg.SIGCD.BaseURL = base
	}
	if base := os.Getenv("ATENCION_API_URL"); base != "" {
		cfg.Atencion.BaseURL = base
	}
	if ep := os.Getenv("ATENCION_CATALOGO_ENDPOINT"); ep != "" {
		cfg.Atencion.CatalogoEndpoint = ep
	}

	// Offsite arqueo backup credentials come from the environment only
	if ep := os.Getenv("BACKUP_S3_ENDPOINT"); ep != "" {
		cfg.Backup.Endpoint = ep
	}
	if ak := os.Getenv("BACKUP_S3_ACCESS_KEY"); ak != "" {
		cfg.Backup.AccessKey = ak
	}
	if sk := os.Getenv("BACKUP_S3_SECRET_KEY"); sk != "" {
		cfg.Backup.SecretKey = sk
	}
	if b := os.Getenv("BACKUP_S3_BUCKET"); b != "" {
		cfg.Backup.Bucket = b
	}

	return &cfg
}
