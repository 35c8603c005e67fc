package objectstore

import (
	"errors"
	"fmt"
	"os"
)

// Ошибки конфигурации хранилища.
var (
	ErrEmptyEndpoint = errors.New("objectstore endpoint is empty")
	ErrEmptyBucket   = errors.New("objectstore bucket is empty")
	ErrEmptyCreds    = errors.New("objectstore credentials are empty")
)

// Config — настройки S3-совместимого хранилища артефактов.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// FromEnv читает конфигурацию из окружения.
func FromEnv() Config {
	return Config{
		Endpoint:  os.Getenv("OBJECTSTORE_ENDPOINT"),
		AccessKey: os.Getenv("OBJECTSTORE_ACCESS_KEY"),
		SecretKey: os.Getenv("OBJECTSTORE_SECRET_KEY"),
		Bucket:    os.Getenv("OBJECTSTORE_BUCKET"),
		Region:    os.Getenv("OBJECTSTORE_REGION"),
		UseSSL:    os.Getenv("OBJECTSTORE_USE_SSL") == "true",
	}
}

// Validate проверяет обязательные поля.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	if c.Bucket == "" {
		return ErrEmptyBucket
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: access and secret keys are required", ErrEmptyCreds)
	}
	return nil
}
