// Package config provides configuration management for the eGHL purchase service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
	"time"
)

// Config holds all configuration for the eGHL purchase service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"eghl"`
	} `yaml:"mongo"`
	Gateway Gateway `yaml:"gateway"`
}

// Gateway describes the eGHL endpoint and merchant credentials.
// Password is the shared secret folded into every hash; it is never sent to the gateway.
type Gateway struct {
	EndpointBase        string        `yaml:"endpoint_base" env:"GATEWAY_ENDPOINT" env-default:"https://pay.e-ghl.com/ipgsg/payment.aspx"`
	ServiceID           string        `yaml:"service_id" env:"GATEWAY_SERVICE_ID" env-default:"SIT"`
	Password            string        `yaml:"password" env:"GATEWAY_PASSWORD" env-default:"sit12345"`
	ReturnURL           string        `yaml:"return_url" env:"GATEWAY_RETURN_URL" env-default:"s2s"`
	Timeout             time.Duration `yaml:"timeout" env:"GATEWAY_TIMEOUT" env-default:"60s"`
	MaxBodyBytes        int64         `yaml:"max_body_bytes" env:"GATEWAY_MAX_BODY_BYTES" env-default:"1048576"`
	AllowZeroAmount     bool          `yaml:"allow_zero_amount" env:"GATEWAY_ALLOW_ZERO_AMOUNT" env-default:"false"`
	AllowNegativeAmount bool          `yaml:"allow_negative_amount" env:"GATEWAY_ALLOW_NEGATIVE_AMOUNT" env-default:"false"`
}

// Validate reports missing gateway credentials.
func (g *Gateway) Validate() error {
	if g.EndpointBase == "" {
		return fmt.Errorf("gateway endpoint is not configured")
	}
	if g.ServiceID == "" {
		return fmt.Errorf("gateway service id is not configured")
	}
	if g.Password == "" {
		return fmt.Errorf("gateway password is not configured")
	}
	return nil
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
