package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const (
	defaultPort         = 24224
	defaultWriteTimeout = 3 * time.Second
)

// Config хранит конфигурацию для подключения к Fluent Bit.
type Config struct {
	Host         string // "127.0.0.1" или "fluent-bit" в Docker
	Port         int    // 0 - порт по умолчанию 24224
	TagPrefix    string // общий префикс тегов этого сервиса
	WriteTimeout time.Duration
	// Async - отправка через внутренний буфер, Post не блокирует обработчик запроса
	Async bool
}

func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("fluentd host is required")
	}
	if c.TagPrefix == "" {
		return fmt.Errorf("fluentd tag prefix is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("fluentd port %d is out of range", c.Port)
	}
	return nil
}

// NewClient создает клиент Fluent Bit. Соединение устанавливается лениво,
// ошибки сети появятся при первой отправке записи.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   port,
		TagPrefix:    cfg.TagPrefix,
		WriteTimeout: writeTimeout,
		Async:        cfg.Async,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
