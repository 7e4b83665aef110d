package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"socialdown/internal/Service/fetcher"
	"socialdown/internal/Service/processor"
	"socialdown/pkg/logster"
)

type Config struct {
	HttpServer HttpServer       `yaml:"http_server"`
	Logger     logster.Config   `yaml:"logger"`
	Processor  processor.Config `yaml:"processor"`
	Fetcher    fetcher.Config   `yaml:"fetcher"`
}

type HttpServer struct {
	Addr string `yaml:"addr"`
	Port string `yaml:"port"`
}

func LoadConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return err
	}

	return nil
}

// ApplyEnv overrides the listen address from the environment, typically
// populated from a .env file.
func (c *Config) ApplyEnv() {
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		c.HttpServer.Addr = addr
	}
	if port := os.Getenv("HTTP_PORT"); port != "" {
		c.HttpServer.Port = port
	}
}
