package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Default dataset locations.
const (
	DefaultEducationURL = "https://raw.githubusercontent.com/no-stack-dub-sack/testable-projects-fcc/master/src/data/choropleth_map/for_user_education.json"
	DefaultGeometryURL  = "https://raw.githubusercontent.com/no-stack-dub-sack/testable-projects-fcc/master/src/data/choropleth_map/counties.json"
)

// Geometry source kinds.
const (
	SourceTopoJSON  = "topojson"
	SourceShapefile = "shapefile"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the statistics and geometry inputs.
type DataConfig struct {
	EducationURL     string `yaml:"education_url" mapstructure:"education_url"`
	GeometryURL      string `yaml:"geometry_url" mapstructure:"geometry_url"`
	GeometrySource   string `yaml:"geometry_source" mapstructure:"geometry_source"`
	ShapefilePath    string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
	ShapefileIDField string `yaml:"shapefile_id_field" mapstructure:"shapefile_id_field"`
	CountiesObject   string `yaml:"counties_object" mapstructure:"counties_object"`
	StatesObject     string `yaml:"states_object" mapstructure:"states_object"`
}

// FetchConfig configures dataset downloads.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// MarginConfig is the space around the map area, in pixels.
type MarginConfig struct {
	Top    int `yaml:"top" mapstructure:"top"`
	Right  int `yaml:"right" mapstructure:"right"`
	Bottom int `yaml:"bottom" mapstructure:"bottom"`
	Left   int `yaml:"left" mapstructure:"left"`
}

// RenderConfig configures the SVG map and legend.
type RenderConfig struct {
	Width            int          `yaml:"width" mapstructure:"width"`
	Height           int          `yaml:"height" mapstructure:"height"`
	Margin           MarginConfig `yaml:"margin" mapstructure:"margin"`
	Palette          string       `yaml:"palette" mapstructure:"palette"`
	PaletteFile      string       `yaml:"palette_file" mapstructure:"palette_file"`
	NoDataColor      string       `yaml:"no_data_color" mapstructure:"no_data_color"`
	Title            string       `yaml:"title" mapstructure:"title"`
	Description      string       `yaml:"description" mapstructure:"description"`
	LegendCellWidth  int          `yaml:"legend_cell_width" mapstructure:"legend_cell_width"`
	LegendCellHeight int          `yaml:"legend_cell_height" mapstructure:"legend_cell_height"`
	TickPrecision    int          `yaml:"tick_precision" mapstructure:"tick_precision"`
	Projection       string       `yaml:"projection" mapstructure:"projection"`
	StrokeWidth      float64      `yaml:"stroke_width" mapstructure:"stroke_width"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	CORSOrigins    []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHOROPLETH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.education_url", DefaultEducationURL)
	v.SetDefault("data.geometry_url", DefaultGeometryURL)
	v.SetDefault("data.geometry_source", SourceTopoJSON)
	v.SetDefault("data.shapefile_id_field", "GEOID")
	v.SetDefault("data.counties_object", "counties")
	v.SetDefault("data.states_object", "states")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.user_agent", "edu-choropleth/1.0")
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("render.width", 1000)
	v.SetDefault("render.height", 600)
	v.SetDefault("render.margin.top", 70)
	v.SetDefault("render.margin.right", 30)
	v.SetDefault("render.margin.bottom", 90)
	v.SetDefault("render.margin.left", 70)
	v.SetDefault("render.palette", "YlGnBu")
	v.SetDefault("render.no_data_color", "")
	v.SetDefault("render.title", "United States Educational Attainment")
	v.SetDefault("render.description", "Percentage of adults age 25 and older with a bachelor's degree or higher (2010-2014)")
	v.SetDefault("render.legend_cell_width", 50)
	v.SetDefault("render.legend_cell_height", 15)
	v.SetDefault("render.tick_precision", 1)
	v.SetDefault("render.projection", "identity")
	v.SetDefault("render.stroke_width", 0.2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.requests_per_sec", 20)
	v.SetDefault("server.burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail late during a load or
// render. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	switch c.Data.GeometrySource {
	case SourceTopoJSON:
		if c.Data.GeometryURL == "" {
			problems = append(problems, "data.geometry_url is required")
		}
		if c.Data.CountiesObject == "" {
			problems = append(problems, "data.counties_object is required")
		}
	case SourceShapefile:
		if c.Data.ShapefilePath == "" {
			problems = append(problems, "data.shapefile_path is required")
		}
		if c.Data.ShapefileIDField == "" {
			problems = append(problems, "data.shapefile_id_field is required")
		}
	default:
		problems = append(problems, "data.geometry_source must be topojson or shapefile")
	}
	if c.Data.EducationURL == "" {
		problems = append(problems, "data.education_url is required")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		problems = append(problems, "render.width and render.height must be positive")
	}
	if c.Render.LegendCellWidth <= 0 || c.Render.LegendCellHeight <= 0 {
		problems = append(problems, "render.legend_cell_width and render.legend_cell_height must be positive")
	}
	if c.Render.TickPrecision < 0 || c.Render.TickPrecision > 6 {
		problems = append(problems, "render.tick_precision must be between 0 and 6")
	}
	switch c.Render.Projection {
	case "identity", "equirectangular":
	default:
		problems = append(problems, "render.projection must be identity or equirectangular")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be between 0 and 65535")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
