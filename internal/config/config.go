package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration tree. It is loaded once at boot and handed
// piecewise to components at construction time; nothing reads it globally.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Webhook       WebhookConfig       `mapstructure:"webhook"`
	Email         EmailConfig         `mapstructure:"email"`
	Upload        UploadConfig        `mapstructure:"upload"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	CORS          CORSConfig          `mapstructure:"cors"`
	Log           LogConfig           `mapstructure:"log"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr returns the host:port address of the Redis server.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type MinIOConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	UseSSL      bool   `mapstructure:"use_ssl"`
	RawBucket   string `mapstructure:"raw_bucket"`
	ImageBucket string `mapstructure:"image_bucket"`
	VideoBucket string `mapstructure:"video_bucket"`
}

// Buckets returns every bucket the service expects to exist.
func (m *MinIOConfig) Buckets() []string {
	return []string{m.RawBucket, m.ImageBucket, m.VideoBucket}
}

type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
}

type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// AuthConfig holds token signing material and cookie settings.
type AuthConfig struct {
	AccessSecret       string `mapstructure:"access_secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	AccessExpireMins   int    `mapstructure:"access_expire_mins"`
	RefreshExpireHours int    `mapstructure:"refresh_expire_hours"`
	CookieMaxAgeDays   int    `mapstructure:"cookie_max_age_days"`
	Issuer             string `mapstructure:"issuer"`
}

func (a *AuthConfig) AccessTTL() time.Duration {
	return time.Duration(a.AccessExpireMins) * time.Minute
}

func (a *AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(a.RefreshExpireHours) * time.Hour
}

// CookieMaxAge returns the cookie lifetime in seconds.
func (a *AuthConfig) CookieMaxAge() int {
	return a.CookieMaxAgeDays * 24 * 3600
}

// WebhookConfig holds the shared secret presented by the media pipeline.
type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	PublicURL    string `mapstructure:"public_url"` // base URL embedded in mail links
}

type UploadConfig struct {
	TempDir  string `mapstructure:"temp_dir"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

// RateLimitConfig throttles the expensive endpoints: credential attempts
// and uploads.
type RateLimitConfig struct {
	LoginPerSec  float64 `mapstructure:"login_per_sec"`
	LoginBurst   int     `mapstructure:"login_burst"`
	UploadPerSec float64 `mapstructure:"upload_per_sec"`
	UploadBurst  int     `mapstructure:"upload_burst"`
}

type CORSConfig struct {
	Origin string `mapstructure:"origin"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Load reads the YAML config file, layering environment variables on top.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
