package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Store drivers understood by the document store factory.
const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StorePostgres  = "postgres"
	StoreSQLite    = "sqlite"
	StoreMemory    = "memory"
)

// Image hosts understood by the upload service.
const (
	ImageHostCloudinary = "cloudinary"
	ImageHostLocal      = "local"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store  StoreConfig
	Redis  RedisConfig
	Cache  CacheConfig
	JWT    JWTConfig
	Admin  AdminConfig
	CORS   CORSConfig
	Log    LogConfig
	Images ImagesConfig
	Site   SiteConfig
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Driver    string
	Postgres  DatabaseConfig
	SQLite    SQLiteConfig
	Firestore FirestoreConfig
	Mongo     MongoConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type SQLiteConfig struct {
	Path string
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig governs caching of public listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminConfig holds the accounts allowed into the admin API, keyed by email.
type AdminConfig struct {
	Accounts map[string]string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ImagesConfig configures the upload side-channel.
type ImagesConfig struct {
	Host                   string
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryBaseURL      string
	UploadTimeout          time.Duration
	MaxUploadBytes         int64
	MediaDir               string
	MediaBaseURL           string
}

// SiteConfig holds public site behaviour.
type SiteConfig struct {
	Name        string
	Timezone    string
	SeedOnStart bool
	ContactMail string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		Postgres: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		SQLite: SQLiteConfig{Path: v.GetString("SQLITE_PATH")},
		Firestore: FirestoreConfig{
			ProjectID:       v.GetString("FIRESTORE_PROJECT_ID"),
			CredentialsFile: v.GetString("FIRESTORE_CREDENTIALS_FILE"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Admin = AdminConfig{Accounts: parseAccounts(v.GetString("ADMIN_ACCOUNTS"))}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxUpload := v.GetInt64("UPLOAD_MAX_BYTES")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}
	cfg.Images = ImagesConfig{
		Host:                   strings.ToLower(v.GetString("IMAGE_HOST")),
		CloudinaryCloudName:    v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset: v.GetString("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryBaseURL:      v.GetString("CLOUDINARY_BASE_URL"),
		UploadTimeout:          parseDuration(v.GetString("UPLOAD_TIMEOUT"), 30*time.Second),
		MaxUploadBytes:         maxUpload,
		MediaDir:               v.GetString("MEDIA_DIR"),
		MediaBaseURL:           v.GetString("MEDIA_BASE_URL"),
	}

	cfg.Site = SiteConfig{
		Name:        v.GetString("SITE_NAME"),
		Timezone:    v.GetString("SITE_TIMEZONE"),
		SeedOnStart: v.GetBool("SEED_ON_START"),
		ContactMail: v.GetString("SITE_CONTACT_EMAIL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ec_website")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("SQLITE_PATH", "./data/website.db")
	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "ec_website")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "ec-website")
	v.SetDefault("ADMIN_ACCOUNTS", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("IMAGE_HOST", ImageHostCloudinary)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "drrm2qz39")
	v.SetDefault("CLOUDINARY_UPLOAD_PRESET", "ecbing")
	v.SetDefault("CLOUDINARY_BASE_URL", "https://api.cloudinary.com")
	v.SetDefault("UPLOAD_TIMEOUT", "30s")
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("MEDIA_BASE_URL", "http://localhost:8080/media")

	v.SetDefault("SITE_NAME", "Entrepreneur Connect")
	v.SetDefault("SITE_TIMEZONE", "America/New_York")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("SITE_CONTACT_EMAIL", "ecclub@binghamton.edu")
}

// Location resolves the configured site timezone, falling back to UTC.
func (s SiteConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseAccounts reads "email=hash,email=hash" pairs. Entries without a hash are skipped.
func parseAccounts(raw string) map[string]string {
	accounts := make(map[string]string)
	for _, entry := range splitAndTrim(raw) {
		email, hash, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		email = strings.ToLower(strings.TrimSpace(email))
		hash = strings.TrimSpace(hash)
		if email == "" || hash == "" {
			continue
		}
		accounts[email] = hash
	}
	return accounts
}
