package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	CORS    CORSConfig    `yaml:"cors"`
	Events  EventsConfig  `yaml:"events"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MongoConfig 는 블로그 포스트 컬렉션이 위치한 MongoDB 접속 정보다.
// URI 는 DATABASE_URL 환경변수가 있으면 그 값으로 덮어쓴다.
type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// EventsConfig 는 포스트 생성/수정/삭제 이벤트 발행 설정이다.
// Enabled 가 false 이면 이벤트 버스를 만들지 않는다.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

var config *AppConfig

func InitApp() {
	base := GetBasePath()
	if base == "" {
		base, _ = os.Getwd()
	}
	c, err := Load(base)
	if err != nil {
		panic(err)
	}
	config = c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Load 는 dir 의 .env 와 config.yaml 을 읽어 설정을 구성한다.
// config.yaml 이 없으면 기본값과 환경변수만으로 구성한다.
func Load(dir string) (*AppConfig, error) {
	// load environment variables
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	c := Defaults()

	// load configuration file
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	}

	if err := applyEnv(&c); err != nil {
		return nil, err
	}
	fillDefaults(&c)
	return &c, nil
}

// Defaults returns the configuration used when neither config.yaml nor the
// environment say otherwise.
func Defaults() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			// Fallback for local docker-compose default
			URI:            "mongodb://localhost:27017/blog",
			Database:       "blog",
			Collection:     "posts",
			ConnectTimeout: 10 * time.Second,
		},
		CORS:   CORSConfig{AllowedOrigins: []string{"*"}},
		Events: EventsConfig{Topic: "blog.post.events"},
	}
}

func applyEnv(c *AppConfig) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Events.Brokers = v
		c.Events.Enabled = true
	}
	return nil
}

func fillDefaults(c *AppConfig) {
	d := Defaults()
	if c.Server.Port <= 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = d.Mongo.Collection
	}
	if c.Mongo.ConnectTimeout <= 0 {
		c.Mongo.ConnectTimeout = d.Mongo.ConnectTimeout
	}
	if c.Events.Topic == "" {
		c.Events.Topic = d.Events.Topic
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
