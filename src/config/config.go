package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	MediaCloudinary = "cloudinary"
	MediaMinio      = "minio"
)

type Config struct {
	Host              string        `yaml:"host"`
	Port              string        `yaml:"port"`
	GinMode           string        `yaml:"ginMode"`
	SiteURL           string        `yaml:"siteUrl"`
	DatabaseURL       string        `yaml:"databaseUrl"`
	MediaDriver       string        `yaml:"mediaDriver"`
	Cloudinary        Cloudinary    `yaml:"cloudinary"`
	Minio             Minio         `yaml:"minio"`
	TMDB              TMDB          `yaml:"tmdb"`
	Redis             Redis         `yaml:"redis"`
	Log               Log           `yaml:"log"`
	ReconcileSchedule string        `yaml:"reconcileSchedule"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloudName"`
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
	PublicURL string `yaml:"publicUrl"`
}

type TMDB struct {
	APIKey        string        `yaml:"apiKey"`
	BaseURL       string        `yaml:"baseUrl"`
	ImageBase     string        `yaml:"imageBase"`
	GenreCacheTTL time.Duration `yaml:"genreCacheTtl"`
}

type Redis struct {
	Mode       string   `yaml:"mode"`
	Host       string   `yaml:"host"`
	Port       string   `yaml:"port"`
	Password   string   `yaml:"password"`
	MasterName string   `yaml:"masterName"`
	Sentinels  []string `yaml:"sentinels"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Defaults() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        "4000",
		SiteURL:     "http://localhost:4000",
		MediaDriver: MediaCloudinary,
		Minio:       Minio{Bucket: "catalog"},
		TMDB: TMDB{
			BaseURL:       "https://api.themoviedb.org/3",
			ImageBase:     "https://image.tmdb.org/t/p",
			GenreCacheTTL: time.Hour,
		},
		Redis:           Redis{Port: "6379"},
		Log:             Log{Level: "info"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads .env when present, then the YAML file named by CONFIG_FILE,
// then environment overrides.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("HOST", &c.Host)
	str("PORT", &c.Port)
	str("GIN_MODE", &c.GinMode)
	str("SITE_URL", &c.SiteURL)
	str("DATABASE_URL", &c.DatabaseURL)
	str("MEDIA_DRIVER", &c.MediaDriver)
	str("CLOUDINARY_CLOUD_NAME", &c.Cloudinary.CloudName)
	str("CLOUDINARY_API_KEY", &c.Cloudinary.APIKey)
	str("CLOUDINARY_API_SECRET", &c.Cloudinary.APISecret)
	str("MINIO_ENDPOINT", &c.Minio.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Minio.AccessKey)
	str("MINIO_SECRET_KEY", &c.Minio.SecretKey)
	str("MINIO_BUCKET", &c.Minio.Bucket)
	str("MINIO_PUBLIC_URL", &c.Minio.PublicURL)
	str("TMDB_API_KEY", &c.TMDB.APIKey)
	str("TMDB_BASE_URL", &c.TMDB.BaseURL)
	str("TMDB_IMG_BASE", &c.TMDB.ImageBase)
	str("REDIS_MODE", &c.Redis.Mode)
	str("REDIS_HOST", &c.Redis.Host)
	str("REDIS_PORT", &c.Redis.Port)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("REDIS_MASTER_NAME", &c.Redis.MasterName)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("RECONCILE_SCHEDULE", &c.ReconcileSchedule)

	if v, ok := lookup("REDIS_SENTINELS"); ok && v != "" {
		c.Redis.Sentinels = nil
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				c.Redis.Sentinels = append(c.Redis.Sentinels, addr)
			}
		}
	}
	if v, ok := lookup("MINIO_USE_SSL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MINIO_USE_SSL: %w", err)
		}
		c.Minio.UseSSL = b
	}
	if v, ok := lookup("GENRE_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GENRE_CACHE_TTL: %w", err)
		}
		c.TMDB.GenreCacheTTL = d
	}

	if c.DatabaseURL == "" {
		c.DatabaseURL = composeDSN(lookup)
	}
	return nil
}

// composeDSN builds a postgres DSN from the DB_* variables.
func composeDSN(lookup func(string) (string, bool)) string {
	host, _ := lookup("DB_HOST")
	if host == "" {
		return ""
	}
	port, _ := lookup("DB_PORT")
	if port == "" {
		port = "5432"
	}
	user, _ := lookup("DB_USER")
	pass, _ := lookup("DB_PASS")
	name, _ := lookup("DB_NAME")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		host, port, user, pass, name)
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL (or DB_HOST) is required")
	}
	switch c.MediaDriver {
	case MediaCloudinary, MediaMinio:
	default:
		return fmt.Errorf("unknown MEDIA_DRIVER %q", c.MediaDriver)
	}
	return nil
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
