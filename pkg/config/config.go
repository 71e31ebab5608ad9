// Package config holds the immutable process configuration. It is loaded once
// in main and handed to the container; nothing else reads the environment.
package config

import (
	"fmt"
	"time"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Mail     MailConfig     `mapstructure:"mail"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Environment     string        `mapstructure:"environment"`
	Port            string        `mapstructure:"port"`
	CORSOrigins     string        `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// IsProduction reports whether error details must be hidden from clients.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Driver       string         `mapstructure:"driver"`
	Postgres     PostgresConfig `mapstructure:"postgres"`
	SQLitePath   string         `mapstructure:"sqlite_path"`
	MaxOpenConns int            `mapstructure:"max_open_conns"`
	MaxIdleConns int            `mapstructure:"max_idle_conns"`
	AutoMigrate  bool           `mapstructure:"auto_migrate"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

type RedisConfig struct {
	Address     string        `mapstructure:"address"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	JobCacheTTL time.Duration `mapstructure:"job_cache_ttl"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type UploadConfig struct {
	Root        string `mapstructure:"root"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
	Backend     string `mapstructure:"backend"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	AWSRegion   string `mapstructure:"aws_region"`
	PublicPath  string `mapstructure:"public_path"`
}

type MailConfig struct {
	Transport    string        `mapstructure:"transport"`
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     int           `mapstructure:"smtp_port"`
	SMTPUsername string        `mapstructure:"smtp_username"`
	SMTPPassword string        `mapstructure:"smtp_password"`
	SMTPUseTLS   bool          `mapstructure:"smtp_use_tls"`
	From         string        `mapstructure:"from"`
	StaffAddress string        `mapstructure:"staff_address"`
	CompanyName  string        `mapstructure:"company_name"`
	Timeout      time.Duration `mapstructure:"timeout"`
	AWSRegion    string        `mapstructure:"aws_region"`
}

type AuthConfig struct {
	AdminAPIKey string `mapstructure:"admin_api_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendLocal = "local"
	BackendS3    = "s3"

	TransportSMTP = "smtp"
	TransportSES  = "ses"
	TransportLog  = "log"
)
