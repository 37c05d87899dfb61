package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

type Config struct {
	Env         string           `yaml:"env" env:"ENV" env-default:"local"`
	CallTimeout time.Duration    `yaml:"call_timeout" env:"CALL_TIMEOUT" env-default:"5s"`
	Tarantool   TarantoolConfig  `yaml:"tarantool"`
	Mattermost  MattermostConfig `yaml:"mattermost"`
}

type TarantoolConfig struct {
	Address       string        `yaml:"address" env:"TT_ADDRESS" env-default:"127.0.0.1:3301"`
	User          string        `yaml:"user" env:"TT_USER" env-required:"true"`
	Password      string        `yaml:"password" env:"TT_PASSWORD" env-required:"true"`
	Timeout       time.Duration `yaml:"timeout" env:"TT_TIMEOUT" env-default:"1s"`
	Reconnect     time.Duration `yaml:"reconnect" env:"TT_RECONNECT" env-default:"3s"`
	MaxReconnects uint          `yaml:"max_reconnects" env:"TT_MAX_RECONNECTS" env-default:"5"`
}

type MattermostConfig struct {
	Server   string `yaml:"server" env:"MM_SERVER" env-required:"true"`
	Token    string `yaml:"token" env:"MM_TOKEN" env-required:"true"`
	UserName string `yaml:"username" env:"MM_USERNAME" env-default:"PollBooth"`
	TeamName string `yaml:"team" env:"MM_TEAM" env-default:"PollBooth"`
}

// Load reads the YAML file named by CONFIG_PATH when it is set, environment
// variables otherwise. Environment variables override file values.
func Load() (*Config, error) {
	return load(os.Getenv("CONFIG_PATH"))
}

func load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from env: %w", err)
	}
	return &cfg, nil
}
