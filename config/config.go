package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds general application settings
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig holds the web listener settings
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// APIConfig holds the upstream catalog API settings
type APIConfig struct {
	// BaseURL is the address of the remote catalog/back-office API.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds every outbound request in seconds.
	Timeout int `yaml:"timeout"`
	// ProbeInterval is the cron spec for the upstream reachability probe.
	ProbeInterval string `yaml:"probe_interval"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System SysConfig `yaml:"system"`
	Web    WebConfig `yaml:"web"`
	API    APIConfig `yaml:"api"`
	Logger LogConfig `yaml:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) APITimeout() time.Duration {
	if c.API.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.Timeout) * time.Second
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "KalaiWeb",
		Location: "America/Costa_Rica",
		Workdir:  "/var/kalaiweb",
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   3000,
		Secret: "9b6de5cc-0731-4bf1-kalai-0f568ac9da37",
	},
	API: APIConfig{
		BaseURL:       "http://localhost:8000",
		Timeout:       10,
		ProbeInterval: "@every 60s",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "kalaiweb.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the YAML config file when present and applies
// environment overrides on top. A missing file is not an error, the
// defaults above stand in.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("KALAI_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("KALAI_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("KALAI_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("KALAI_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("KALAI_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("KALAI_WEB_SECRET", func(v string) { cfg.Web.Secret = v })

	setEnvValue("KALAI_API_URL", func(v string) { cfg.API.BaseURL = v })
	setEnvIntValue("KALAI_API_TIMEOUT", func(v int) { cfg.API.Timeout = v })

	setEnvValue("KALAI_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("KALAI_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	return cfg
}
