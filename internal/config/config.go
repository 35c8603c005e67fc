// Package config — конфигурация CLI и раннера.
//
// Источники в порядке приоритета: переменные окружения,
// YAML файл, значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/Annotata/internal/objectstore"
)

var (
	// ErrEmptyPlatformURL — не задан адрес платформы.
	ErrEmptyPlatformURL = errors.New("platform base_url is empty")

	// ErrEmptyAMQPURL — не задан адрес брокера.
	ErrEmptyAMQPURL = errors.New("amqp url is empty")
)

// Platform — подключение к API платформы.
type Platform struct {
	BaseURL      string `yaml:"base_url"`
	Token        string `yaml:"token"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TokenURL     string `yaml:"token_url"`
}

// AMQP — подключение к брокеру сообщений.
type AMQP struct {
	URL      string `yaml:"url"`
	Prefetch int    `yaml:"prefetch"`
}

// Runner — настройки раннера executions.
type Runner struct {
	// HTTPAddr — адрес служебного HTTP сервера (healthz, metrics).
	HTTPAddr string `yaml:"http_addr"`
}

// Scheduler — настройки планировщика триггеров.
type Scheduler struct {
	// Interval — период опроса триггеров.
	Interval time.Duration `yaml:"interval"`
}

// Config — корневая конфигурация.
type Config struct {
	Platform  Platform           `yaml:"platform"`
	AMQP      AMQP               `yaml:"amqp"`
	Store     objectstore.Config `yaml:"store"`
	Runner    Runner             `yaml:"runner"`
	Scheduler Scheduler          `yaml:"scheduler"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() Config {
	return Config{
		AMQP:      AMQP{Prefetch: 8},
		Runner:    Runner{HTTPAddr: ":8080"},
		Scheduler: Scheduler{Interval: 30 * time.Second},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем YAML файл
// (если path не пуст), затем переменные окружения.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv накладывает переменные окружения поверх файла.
func (c *Config) applyEnv() {
	setString(&c.Platform.BaseURL, "ANNOTATA_BASE_URL")
	setString(&c.Platform.Token, "ANNOTATA_TOKEN")
	setString(&c.Platform.ClientID, "ANNOTATA_CLIENT_ID")
	setString(&c.Platform.ClientSecret, "ANNOTATA_CLIENT_SECRET")
	setString(&c.Platform.TokenURL, "ANNOTATA_TOKEN_URL")
	setString(&c.AMQP.URL, "ANNOTATA_AMQP_URL")
	setString(&c.Runner.HTTPAddr, "ANNOTATA_HTTP_ADDR")

	if v := os.Getenv("OBJECTSTORE_ENDPOINT"); v != "" {
		c.Store = objectstore.FromEnv()
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// ValidatePlatform проверяет настройки подключения к платформе.
func (c Config) ValidatePlatform() error {
	if c.Platform.BaseURL == "" {
		return ErrEmptyPlatformURL
	}
	return nil
}

// ValidateRunner проверяет настройки, необходимые раннеру.
func (c Config) ValidateRunner() error {
	if err := c.ValidatePlatform(); err != nil {
		return err
	}
	if c.AMQP.URL == "" {
		return ErrEmptyAMQPURL
	}
	return nil
}
