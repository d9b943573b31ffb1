// Package config holds the controller's settings and their YAML
// round-trip.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vortexhw/vortexpanel/internal/geom"
)

// Serial configures the command link. An empty Port means scan for the
// first port that opens.
type Serial struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Matrix configures the LED chain geometry and brightness. The geometry
// flags describe how the panels were soldered relative to logical order.
type Matrix struct {
	ReverseOrder bool `yaml:"reverse_order"`
	MirrorRows   bool `yaml:"mirror_rows"`
	Rotate       bool `yaml:"rotate"`
	Intensity    int  `yaml:"intensity"`
}

// Bus names the hardware buses and addresses. Empty bus names select the
// platform default. The graphic panel sits at the SSD1306's fixed
// address, so only the character display address is configurable.
type Bus struct {
	SPI     string `yaml:"spi"`
	I2C     string `yaml:"i2c"`
	LCDAddr uint16 `yaml:"lcd_addr"`
}

// Web configures the state mirror server.
type Web struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	Serial   Serial `yaml:"serial"`
	Matrix   Matrix `yaml:"matrix"`
	Bus      Bus    `yaml:"bus"`
	Web      Web    `yaml:"web"`
	LogLevel string `yaml:"log_level"`
}

// Default mirrors how the reference rig is wired: panels soldered in
// reverse chain order with mirrored rows.
func Default() *Config {
	return &Config{
		Serial: Serial{Baud: 115200},
		Matrix: Matrix{
			ReverseOrder: true,
			MirrorRows:   true,
			Intensity:    7,
		},
		Bus: Bus{
			LCDAddr: 0x27,
		},
		Web: Web{
			Enabled: true,
			Addr:    ":8585",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back out as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Layout converts the matrix geometry flags to a geom.Layout.
func (c *Config) Layout() geom.Layout {
	return geom.Layout{
		ReverseOrder: c.Matrix.ReverseOrder,
		MirrorRows:   c.Matrix.MirrorRows,
		Rotate:       c.Matrix.Rotate,
	}
}
