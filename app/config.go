package app

import (
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/settle/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the process configuration of the ledger.
type Config struct {
	ChainID  string `env:"SETTLE_CHAIN_ID"  envDefault:"settle-local"`
	Debug    bool   `env:"SETTLE_DEBUG"`
	LogLevel string `env:"SETTLE_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var conf Config
	if err := env.ParseWithOptions(&conf, opts); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, nil
}

// NewLogger returns a logger writing to w that only passes entries of the
// configured level or above.
func (c Config) NewLogger(w io.Writer) (log.Logger, error) {
	allow, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allow).With("chain", c.ChainID), nil
}
