package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Parser ParserConfig
	Batch  BatchConfig
	S3     S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyMB    int64         `mapstructure:"max_body_mb"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// MaxBodyBytes returns the request body limit in bytes.
func (s *ServerConfig) MaxBodyBytes() int64 {
	return s.MaxBodyMB << 20
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ParserConfig holds document parser settings.
type ParserConfig struct {
	CompanyAnchor string `mapstructure:"company_anchor"`
	ProjectAnchor string `mapstructure:"project_anchor"`
	// RubricFile overrides the built-in classification rubric. Empty means
	// built-in only.
	RubricFile    string `mapstructure:"rubric_file"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// MaxFileBytes returns the document size limit in bytes.
func (p *ParserConfig) MaxFileBytes() int64 {
	return p.MaxFileSizeMB << 20
}

// BatchConfig holds batch runner settings.
type BatchConfig struct {
	Concurrency int      `mapstructure:"concurrency"`
	TimeoutSecs int      `mapstructure:"timeout_secs"`
	Extensions  []string `mapstructure:"extensions"`
	Recursive   bool     `mapstructure:"recursive"`
}

// Timeout returns the per-file parse timeout.
func (b *BatchConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// S3Config holds AWS S3 settings. An empty Bucket disables S3.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from an optional YAML file and from environment
// variables with the BIZDOC_ prefix. Environment variables win. An empty path
// falls back to BIZDOC_CONFIG.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIZDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_body_mb", 10)
	v.SetDefault("server.cors_origins", "http://localhost:3000")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Parser defaults
	v.SetDefault("parser.company_anchor", "companies")
	v.SetDefault("parser.project_anchor", "projects")
	v.SetDefault("parser.rubric_file", "")
	v.SetDefault("parser.max_file_size_mb", 20)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.timeout_secs", 60)
	v.SetDefault("batch.extensions", ".md,.markdown")
	v.SetDefault("batch.recursive", true)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "BIZDOC_SERVER_PORT",
		"server.read_timeout":     "BIZDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "BIZDOC_SERVER_WRITE_TIMEOUT",
		"server.max_body_mb":      "BIZDOC_SERVER_MAX_BODY_MB",
		"server.cors_origins":     "BIZDOC_SERVER_CORS_ORIGINS",
		"log.level":               "BIZDOC_LOG_LEVEL",
		"log.format":              "BIZDOC_LOG_FORMAT",
		"parser.company_anchor":   "BIZDOC_PARSER_COMPANY_ANCHOR",
		"parser.project_anchor":   "BIZDOC_PARSER_PROJECT_ANCHOR",
		"parser.rubric_file":      "BIZDOC_PARSER_RUBRIC_FILE",
		"parser.max_file_size_mb": "BIZDOC_PARSER_MAX_FILE_SIZE_MB",
		"batch.concurrency":       "BIZDOC_BATCH_CONCURRENCY",
		"batch.timeout_secs":      "BIZDOC_BATCH_TIMEOUT_SECS",
		"batch.extensions":        "BIZDOC_BATCH_EXTENSIONS",
		"batch.recursive":         "BIZDOC_BATCH_RECURSIVE",
		"s3.region":               "BIZDOC_S3_REGION",
		"s3.bucket":               "BIZDOC_S3_BUCKET",
		"s3.endpoint":             "BIZDOC_S3_ENDPOINT",
		"s3.access_key":           "BIZDOC_S3_ACCESS_KEY",
		"s3.secret_key":           "BIZDOC_S3_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path == "" {
		path = os.Getenv("BIZDOC_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BIZDOC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BIZDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		MaxBodyMB:    v.GetInt64("server.max_body_mb"),
		CORSOrigins:  splitList(v.GetStringSlice("server.cors_origins")),
	}
	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("log.level")),
		Format: strings.ToLower(v.GetString("log.format")),
	}
	cfg.Parser = ParserConfig{
		CompanyAnchor: v.GetString("parser.company_anchor"),
		ProjectAnchor: v.GetString("parser.project_anchor"),
		RubricFile:    v.GetString("parser.rubric_file"),
		MaxFileSizeMB: v.GetInt64("parser.max_file_size_mb"),
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
		TimeoutSecs: v.GetInt("batch.timeout_secs"),
		Extensions:  parseExtensions(v.GetStringSlice("batch.extensions")),
		Recursive:   v.GetBool("batch.recursive"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	if c.Parser.MaxFileSizeMB < 1 {
		return fmt.Errorf("parser.max_file_size_mb must be at least 1, got %d", c.Parser.MaxFileSizeMB)
	}
	if c.Server.MaxBodyMB < 1 {
		return fmt.Errorf("server.max_body_mb must be at least 1, got %d", c.Server.MaxBodyMB)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// splitList flattens list values and comma-separated strings.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, e := range strings.Split(item, ",") {
			if e = strings.TrimSpace(e); e != "" {
				out = append(out, e)
			}
		}
	}
	return out
}

// parseExtensions accepts both list values and comma-separated strings and
// normalizes entries to a lowercase ".ext" form.
func parseExtensions(raw []string) []string {
	var exts []string
	for _, e := range splitList(raw) {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
