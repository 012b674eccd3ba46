// Package config loads the chaincode process settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/hyperledger/fabric/common/flogging"
)

// Config controls how the chaincode process starts.
type Config struct {
	// ServerAddress switches to chaincode-as-a-service mode when set.
	ServerAddress string `env:"CHAINCODE_SERVER_ADDRESS"`
	CCID          string `env:"CHAINCODE_ID"`
	TLSDisabled   bool   `env:"CHAINCODE_TLS_DISABLED"   envDefault:"true"`
	TLSKeyFile    string `env:"CHAINCODE_TLS_KEY"`
	TLSCertFile   string `env:"CHAINCODE_TLS_CERT"`
	ClientCAFile  string `env:"CHAINCODE_CLIENT_CA_CERT"`
	LoggingSpec   string `env:"CHAINCODE_LOGGING_SPEC"   envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServiceMode reports whether the chaincode runs as an external service
// instead of being launched by the peer.
func (c Config) ServiceMode() bool {
	return c.ServerAddress != ""
}

// Validate checks the logging spec, and in service mode the chaincode ID
// and TLS material.
func (c Config) Validate() error {
	if _, err := flogging.New(flogging.Config{LogSpec: c.LoggingSpec}); err != nil {
		return fmt.Errorf("invalid CHAINCODE_LOGGING_SPEC: %w", err)
	}
	if !c.ServiceMode() {
		return nil
	}
	if c.CCID == "" {
		return errors.New("CHAINCODE_ID is required when CHAINCODE_SERVER_ADDRESS is set")
	}
	if !c.TLSDisabled && (c.TLSKeyFile == "" || c.TLSCertFile == "") {
		return errors.New("CHAINCODE_TLS_KEY and CHAINCODE_TLS_CERT are required when TLS is enabled")
	}
	return nil
}
