package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServer
	MySQL
	Redis
	MinIO
	Kafka
	JWT
	Log
}

type HTTPServer struct {
	BindAddress     string        `env:"BIND_ADDRESS" env-default:"0.0.0.0"`
	BindPort        string        `env:"BIND_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"30s"`
}

type MySQL struct {
	DSN string `env:"MYSQL_DSN" env-default:"user:password@tcp(127.0.0.1:3306)/hobbyhop?charset=utf8mb4&parseTime=True&loc=Local"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type MinIO struct {
	Endpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"hobbyhop-images"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" env-separator:"," env-default:"127.0.0.1:9092"`
	Topic   string   `env:"KAFKA_TOPIC" env-default:"club-events"`
}

type JWT struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET" env-default:"secret-key"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET" env-default:"refresh-key"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL" env-default:"30m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" env-default:"24h"`
}

type Log struct {
	Mode string `env:"LOG_MODE" env-default:"production"`
}

// New 读取 env 文件（不存在时忽略）后再从环境变量装配配置
func New(env string) (*Config, error) {
	conf := &Config{}

	if env != "" {
		if err := godotenv.Overload(env); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Overload: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return conf, nil
}
