package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Store       StoreConfig
	Log         LogConfig
	Overpass    OverpassConfig
	OSM         OSMConfig
	Location    LocationConfig
	Positioning PositioningConfig
	Places      PlacesConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StoreConfig выбирает хранилище для фильтров и ручной локации
type StoreConfig struct {
	Backend string // redis | postgres
}

type LogConfig struct {
	Level string
}

// OverpassConfig - настройки интерпретатора Overpass
type OverpassConfig struct {
	InterpreterURL string
	// RequestTimeout = 0 означает без клиентского таймаута, ограничивает только [timeout:25] в запросе
	RequestTimeout time.Duration
	Margin         float64
}

// OSMConfig - настройки API чтения/обновления узлов OSM
type OSMConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// LocationConfig - координаты по умолчанию для ручного режима
type LocationConfig struct {
	DefaultLat float64
	DefaultLng float64
}

// PositioningConfig - поток позиций устройства в Redis
type PositioningConfig struct {
	Enabled       bool
	Stream        string
	ConsumerGroup string
}

type PlacesConfig struct {
	// SequenceGuard - применять только результат самого последнего запроса
	SequenceGuard bool
}

const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// .env необязателен, достаточно переменных окружения
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("STORE_BACKEND", StoreBackendRedis)
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("OVERPASS_MARGIN", 0.5)
	v.SetDefault("OSM_API_URL", "https://www.openstreetmap.org")
	v.SetDefault("OSM_REQUEST_TIMEOUT", 30)
	v.SetDefault("LOCATION_DEFAULT_LAT", 52.520008)
	v.SetDefault("LOCATION_DEFAULT_LNG", 13.404954)
	v.SetDefault("POSITION_STREAM_ENABLED", false)
	v.SetDefault("POSITION_STREAM", "stream:position:updates")
	v.SetDefault("POSITION_CONSUMER_GROUP", "places-finder")
	v.SetDefault("PLACES_SEQUENCE_GUARD", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			InterpreterURL: v.GetString("OVERPASS_URL"),
			RequestTimeout: time.Duration(v.GetInt("OVERPASS_REQUEST_TIMEOUT")) * time.Second,
			Margin:         v.GetFloat64("OVERPASS_MARGIN"),
		},
		OSM: OSMConfig{
			BaseURL:        strings.TrimRight(v.GetString("OSM_API_URL"), "/"),
			RequestTimeout: time.Duration(v.GetInt("OSM_REQUEST_TIMEOUT")) * time.Second,
		},
		Location: LocationConfig{
			DefaultLat: v.GetFloat64("LOCATION_DEFAULT_LAT"),
			DefaultLng: v.GetFloat64("LOCATION_DEFAULT_LNG"),
		},
		Positioning: PositioningConfig{
			Enabled:       v.GetBool("POSITION_STREAM_ENABLED"),
			Stream:        v.GetString("POSITION_STREAM"),
			ConsumerGroup: v.GetString("POSITION_CONSUMER_GROUP"),
		},
		Places: PlacesConfig{
			SequenceGuard: v.GetBool("PLACES_SEQUENCE_GUARD"),
		},
	}

	if cfg.Store.Backend != StoreBackendRedis && cfg.Store.Backend != StoreBackendPostgres {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	if cfg.Overpass.Margin <= 0 {
		return nil, fmt.Errorf("OVERPASS_MARGIN must be positive, got %v", cfg.Overpass.Margin)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для pgx
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
