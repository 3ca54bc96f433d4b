// Package config loads the planning service configuration from an optional
// YAML file with environment overrides. Defaults are complete enough to run
// with no file at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/proxiglass/planning/internal/scheduling"
)

// ResourceConfig declares a vehicle/technician seeded into the catalog on
// first run.
type ResourceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ExportConfig carries the identity stamped into exported calendars.
type ExportConfig struct {
	Product string `yaml:"product"`
	Locale  string `yaml:"locale"`
}

// Config is the top-level service configuration.
type Config struct {
	// HTTPPort is the API listen port.
	HTTPPort int `yaml:"http_port"`

	// SQLiteDSN locates the appointment database.
	SQLiteDSN string `yaml:"sqlite_dsn"`

	// DayStart and DayEnd bound the visible scheduling window ("HH:MM").
	DayStart string `yaml:"day_start"`
	DayEnd   string `yaml:"day_end"`

	// SnapMinutes is the drag quantization grid; MinDurationMinutes floors
	// the preserved duration of moved appointments.
	SnapMinutes        int `yaml:"snap_minutes"`
	MinDurationMinutes int `yaml:"min_duration_minutes"`

	// Services maps a service category to its default duration in minutes.
	Services map[string]int `yaml:"services"`

	// Resources seeds the vehicle catalog when the store is empty.
	Resources []ResourceConfig `yaml:"resources"`

	Export ExportConfig `yaml:"export"`
}

// Default returns the runnable baseline configuration.
func Default() Config {
	return Config{
		HTTPPort:           8080,
		SQLiteDSN:          "file:planning.db?_pragma=journal_mode(WAL)",
		DayStart:           "08:00",
		DayEnd:             "18:00",
		SnapMinutes:        15,
		MinDurationMinutes: 15,
		Services:           scheduling.DefaultCatalog(),
		Resources: []ResourceConfig{
			{ID: "t1", Name: "Véhicule 1 (bleu)"},
			{ID: "t2", Name: "Véhicule 2 (vert)"},
		},
		Export: ExportConfig{Product: "ProxiGlass", Locale: "FR"},
	}
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("lecture du fichier de configuration %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("fichier de configuration %s invalide: %w", path, err)
			}
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("PLANNING_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PLANNING_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("PLANNING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variables d'environnement invalides: %s", strings.Join(invalid, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	start, err := scheduling.ParseClock(c.DayStart)
	if err != nil {
		return fmt.Errorf("day_start invalide: %q", c.DayStart)
	}
	end, err := scheduling.ParseClock(c.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end invalide: %q", c.DayEnd)
	}
	if start >= end {
		return fmt.Errorf("la fenêtre de planification est vide: %s >= %s", c.DayStart, c.DayEnd)
	}
	if c.SnapMinutes <= 0 || c.MinDurationMinutes <= 0 {
		return fmt.Errorf("snap_minutes et min_duration_minutes doivent être positifs")
	}
	return nil
}

// Grid builds the scheduling grid from the configured window. Config is
// validated at load time, so the clock values always parse here.
func (c Config) Grid() scheduling.Grid {
	start, _ := scheduling.ParseClock(c.DayStart)
	end, _ := scheduling.ParseClock(c.DayEnd)
	return scheduling.Grid{
		DayStartMinutes:    start,
		DayEndMinutes:      end,
		SnapMinutes:        c.SnapMinutes,
		MinDurationMinutes: c.MinDurationMinutes,
	}
}

// Catalog converts the configured service map into the engine's catalog.
func (c Config) Catalog() scheduling.ServiceCatalog {
	if len(c.Services) == 0 {
		return scheduling.DefaultCatalog()
	}
	catalog := make(scheduling.ServiceCatalog, len(c.Services))
	for service, minutes := range c.Services {
		catalog[service] = minutes
	}
	return catalog
}
