package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// legacyEnv binds the variable names used by existing deployments.
var legacyEnv = map[string][]string{
	"app.port":                   {"PORT"},
	"app.environment":            {"APP_ENVIRONMENT", "NODE_ENV"},
	"app.cors_origins":           {"CORS_ORIGINS"},
	"database.driver":            {"DB_DRIVER"},
	"database.postgres.host":     {"DB_HOST"},
	"database.postgres.port":     {"DB_PORT"},
	"database.postgres.user":     {"DB_USER"},
	"database.postgres.password": {"DB_PASS"},
	"database.postgres.name":     {"DB_NAME"},
	"database.postgres.sslmode":  {"DB_SSLMODE"},
	"database.sqlite_path":       {"SQLITE_PATH"},
	"redis.address":              {"REDIS_ADDR"},
	"redis.password":             {"REDIS_PASS"},
	"upload.root":                {"UPLOAD_DIR"},
	"upload.max_file_size":       {"MAX_FILE_SIZE"},
	"upload.backend":             {"UPLOAD_BACKEND"},
	"upload.s3_bucket":           {"AWS_BUCKET"},
	"upload.aws_region":          {"AWS_REGION"},
	"mail.transport":             {"MAIL_TRANSPORT"},
	"mail.smtp_host":             {"SMTP_HOST"},
	"mail.smtp_port":             {"SMTP_PORT"},
	"mail.smtp_username":         {"SMTP_USER"},
	"mail.smtp_password":         {"SMTP_PASS"},
	"mail.from":                  {"MAIL_FROM"},
	"mail.staff_address":         {"HR_EMAIL"},
	"mail.aws_region":            {"AWS_REGION"},
	"auth.admin_api_key":         {"ADMIN_API_KEY"},
	"logging.level":              {"LOG_LEVEL"},
	"logging.format":             {"LOG_FORMAT"},
}

// Load reads config.yaml (optional), .env (optional) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(viper.New(), "config", "./configs", ".")
}

// LoadFrom loads into v using configName searched in paths. Exposed so tests
// can run against an isolated viper instance.
func LoadFrom(v *viper.Viper, configName string, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDerived(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Talencee Careers API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.cors_origins", "*")
	v.SetDefault("app.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.name", "careers")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "careers.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.job_cache_ttl", 5*time.Minute)

	v.SetDefault("upload.root", "uploads")
	v.SetDefault("upload.max_file_size", 5*1024*1024)
	v.SetDefault("upload.backend", BackendLocal)
	v.SetDefault("upload.public_path", "/uploads")

	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.smtp_use_tls", true)
	v.SetDefault("mail.company_name", "Talencee")
	v.SetDefault("mail.timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// applyDerived fills values that depend on other settings.
func applyDerived(cfg *Config) {
	if cfg.Mail.Transport == "" {
		if cfg.Mail.SMTPHost != "" {
			cfg.Mail.Transport = TransportSMTP
		} else {
			cfg.Mail.Transport = TransportLog
		}
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.SMTPUsername
	}
	if cfg.Upload.AWSRegion == "" {
		cfg.Upload.AWSRegion = os.Getenv("AWS_DEFAULT_REGION")
	}
	if cfg.Mail.AWSRegion == "" {
		cfg.Mail.AWSRegion = cfg.Upload.AWSRegion
	}
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.Upload.MaxFileSize <= 0 {
		errs = append(errs, errors.New("upload.max_file_size must be positive"))
	}
	if cfg.Upload.Root == "" {
		errs = append(errs, errors.New("upload.root is required"))
	}

	switch cfg.Upload.Backend {
	case BackendLocal:
	case BackendS3:
		if cfg.Upload.S3Bucket == "" {
			errs = append(errs, errors.New("upload.s3_bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown upload.backend %q", cfg.Upload.Backend))
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q", cfg.Database.Driver))
	}

	switch cfg.Mail.Transport {
	case TransportLog:
	case TransportSMTP:
		if cfg.Mail.SMTPHost == "" {
			errs = append(errs, errors.New("mail.smtp_host is required for the smtp transport"))
		}
	case TransportSES:
		if cfg.Mail.AWSRegion == "" {
			errs = append(errs, errors.New("mail.aws_region is required for the ses transport"))
		}
		if cfg.Mail.From == "" {
			errs = append(errs, errors.New("mail.from is required for the ses transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mail.transport %q", cfg.Mail.Transport))
	}

	return errors.Join(errs...)
}
