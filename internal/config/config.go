package config

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"SoyCrush/internal/model"
)

// DefaultNamingConvention reproduces the chart-export file names,
// e.g. "CBOT_DL_ZL1!, 1D.csv".
const DefaultNamingConvention = "{{.Exchange}}_{{.Source}}_{{.Ticker}}!, {{.Code}}.{{.Ext}}"

// Config holds all application configuration.
type Config struct {
	Data struct {
		BasePath             string            `yaml:"base_path"`
		FileNamingConvention string            `yaml:"file_naming_convention"`
		Format               string            `yaml:"format"`
		Exchange             string            `yaml:"exchange"`
		Source               string            `yaml:"source"`
		Tickers              map[string]string `yaml:"tickers"`
		Resolutions          map[string]string `yaml:"resolutions"`
	} `yaml:"data"`
	Chart struct {
		OutputDir string  `yaml:"output_dir"`
		Format    string  `yaml:"format"`
		WidthPt   float64 `yaml:"width_pt"`
		HeightPt  float64 `yaml:"height_pt"`
	} `yaml:"chart"`
	LogLevel string `yaml:"log_level"`
}

// envOverrides are read with the CRUSH_ prefix, e.g. CRUSH_BASE_PATH.
type envOverrides struct {
	BasePath             string  `envconfig:"BASE_PATH"`
	FileNamingConvention string  `envconfig:"FILE_NAMING_CONVENTION"`
	DataFormat           string  `envconfig:"DATA_FORMAT"`
	OutputDir            string  `envconfig:"OUTPUT_DIR"`
	ChartFormat          string  `envconfig:"CHART_FORMAT"`
	ChartWidth           float64 `envconfig:"CHART_WIDTH"`
	ChartHeight          float64 `envconfig:"CHART_HEIGHT"`
	LogLevel             string  `envconfig:"LOG_LEVEL"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults fill whatever is left unset.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var env envOverrides
	if err := envconfig.Process("CRUSH", &env); err != nil {
		return nil, fmt.Errorf("read env overrides: %w", err)
	}
	cfg.applyEnv(&env)
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv(env *envOverrides) {
	if env.BasePath != "" {
		c.Data.BasePath = env.BasePath
	}
	if env.FileNamingConvention != "" {
		c.Data.FileNamingConvention = env.FileNamingConvention
	}
	if env.DataFormat != "" {
		c.Data.Format = env.DataFormat
	}
	if env.OutputDir != "" {
		c.Chart.OutputDir = env.OutputDir
	}
	if env.ChartFormat != "" {
		c.Chart.Format = env.ChartFormat
	}
	if env.ChartWidth > 0 {
		c.Chart.WidthPt = env.ChartWidth
	}
	if env.ChartHeight > 0 {
		c.Chart.HeightPt = env.ChartHeight
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
}

func (c *Config) applyDefaults() {
	if c.Data.BasePath == "" {
		c.Data.BasePath = "data"
	}
	if c.Data.FileNamingConvention == "" {
		c.Data.FileNamingConvention = DefaultNamingConvention
	}
	if c.Data.Format == "" {
		c.Data.Format = "csv"
	}
	c.Data.Format = strings.ToLower(strings.TrimSpace(c.Data.Format))
	if c.Data.Exchange == "" {
		c.Data.Exchange = "CBOT"
	}
	if c.Data.Source == "" {
		c.Data.Source = "DL"
	}
	tickers := map[string]string{"oil": "ZL1", "meal": "ZM1", "beans": "ZS1"}
	if c.Data.Tickers == nil {
		c.Data.Tickers = map[string]string{}
	}
	for k, v := range tickers {
		if c.Data.Tickers[k] == "" {
			c.Data.Tickers[k] = v
		}
	}
	codes := map[string]string{"day": "1D", "min": "1", "sec": "1S"}
	if c.Data.Resolutions == nil {
		c.Data.Resolutions = map[string]string{}
	}
	for k, v := range codes {
		if c.Data.Resolutions[k] == "" {
			c.Data.Resolutions[k] = v
		}
	}
	if c.Chart.Format == "" {
		c.Chart.Format = "png"
	}
	c.Chart.Format = strings.ToLower(strings.TrimSpace(c.Chart.Format))
	if c.Chart.WidthPt == 0 {
		c.Chart.WidthPt = 1440
	}
	if c.Chart.HeightPt == 0 {
		c.Chart.HeightPt = 360
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.BasePath == "" {
		return fmt.Errorf("data.base_path is required")
	}
	if _, err := template.New("file").Parse(c.Data.FileNamingConvention); err != nil {
		return fmt.Errorf("data.file_naming_convention: %w", err)
	}
	switch c.Data.Format {
	case "csv", "parquet":
	default:
		return fmt.Errorf("data.format %q not supported (use: csv, parquet)", c.Data.Format)
	}
	switch c.Chart.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("chart.format %q not supported (use: png, svg)", c.Chart.Format)
	}
	if c.Chart.WidthPt <= 0 || c.Chart.HeightPt <= 0 {
		return fmt.Errorf("chart size must be positive")
	}
	return nil
}

// CommodityTickers returns the configured ticker of each commodity.
func (c *Config) CommodityTickers() map[model.Commodity]string {
	out := make(map[model.Commodity]string, len(model.Commodities))
	for _, cm := range model.Commodities {
		out[cm] = c.Data.Tickers[string(cm)]
	}
	return out
}

// ResolutionCodes returns the file code of each resolution.
func (c *Config) ResolutionCodes() map[model.Resolution]string {
	out := make(map[model.Resolution]string, len(model.Resolutions))
	for _, r := range model.Resolutions {
		out[r] = c.Data.Resolutions[string(r)]
	}
	return out
}
