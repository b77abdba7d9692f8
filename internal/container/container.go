package container

import (
	"time"

	"github.com/serroba/qr-code-manager/internal/auth"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendMinio  = "minio"
	BackendNone   = "none"
)

// Options are read by humacli from flags or SERVICE_* environment variables.
type Options struct {
	Port        int    `default:"8888"                            help:"Port to listen on"                        short:"p"`
	BaseURL     string `default:"http://localhost:8888"           help:"Public base URL of the API"`
	DownloadURL string `default:"http://localhost:8888/downloads" help:"Public base URL QR code images are served from"`

	LogFormat string `default:"console" help:"Log format: console or json"`
	LogLevel  string `default:"info"    help:"Log level: debug, info, warn or error"`
	LogFile   string `default:""        help:"Optional file that receives rotated JSON logs"`

	RedisAddr        string `default:"localhost:6379" help:"Redis server address"                short:"r"`
	RateLimitBackend string `default:"memory"         help:"Rate limit store: memory or redis"`
	EventsBackend    string `default:"memory"         help:"Event transport: memory, redis or none"`
	DatabaseURL      string `default:""               help:"PostgreSQL URL for QR code events; empty logs them instead"`

	Storage        string `default:"file"           help:"QR code storage: file or minio"`
	QRDirectory    string `default:"./qr_codes"     help:"Directory for file storage"`
	MinioEndpoint  string `default:"localhost:9000" help:"MinIO endpoint"`
	MinioAccessKey string `default:"minioadmin"     help:"MinIO access key"`
	MinioSecretKey string `default:"minioadmin"     help:"MinIO secret key"`
	MinioBucket    string `default:"qr-codes"       help:"MinIO bucket"`
	MinioUseSSL    bool   `default:"false"          help:"Use TLS for MinIO"`

	AdminUser                string `default:"admin"             help:"Admin username"`
	AdminPassword            string `default:"secret"            help:"Admin password"`
	SecretKey                string `default:"a_very_secret_key" help:"Token signing secret"`
	Algorithm                string `default:"HS256"             help:"Token signing algorithm: HS256, HS384 or HS512"`
	AccessTokenExpireMinutes int    `default:"30"                help:"Access token lifetime in minutes"`
}

// AuthConfig returns the immutable credential and signing settings.
func (o *Options) AuthConfig() auth.Config {
	return auth.Config{
		AdminUsername: o.AdminUser,
		AdminPassword: o.AdminPassword,
		SecretKey:     o.SecretKey,
		Algorithm:     o.Algorithm,
		TokenTTL:      time.Duration(o.AccessTokenExpireMinutes) * time.Minute,
	}
}

// RedisEnabled reports whether any component is configured to use redis.
func (o *Options) RedisEnabled() bool {
	return o.RateLimitBackend == BackendRedis || o.EventsBackend == BackendRedis
}
