// Copyright 2025 Matthew Gall <me@matthewgall.dev>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Calendar days are counted in this time zone
	Timezone string `yaml:"timezone"`

	// Supplier and levy constants
	Tariff TariffConstants `yaml:"tariff"`

	// Grid operator tariff, used when a month has no nettleie
	Grid GridConfig `yaml:"grid"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Timezone: DefaultTimezone,
		Tariff: TariffConstants{
			ElAvgiftPerKwh: DefaultElAvgiftPerKwh,
			PaaslagPerKwh:  DefaultPaaslagPerKwh,
			FastprisKr:     DefaultFastprisKr,
		},
		Grid: GridConfig{
			DayRateOre:     35.9,
			NightRateOre:   28.9,
			DayStartHour:   6,
			DayEndHour:     22,
			WeekendIsNight: true,
			FastleddSteps: []FastleddStep{
				{Name: "0-2 kW", FromKw: 0, ToKw: 2, Cost: 125},
				{Name: "2-5 kW", FromKw: 2, ToKw: 5, Cost: 200},
				{Name: "5-10 kW", FromKw: 5, ToKw: 10, Cost: 325},
				{Name: "10-15 kW", FromKw: 10, ToKw: 15, Cost: 450},
				{Name: "15-20 kW", FromKw: 15, ToKw: 20, Cost: 575},
				{Name: "20-25 kW", FromKw: 20, ToKw: 25, Cost: 700},
			},
		},
		Debug: false,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	// If no path provided, return defaults with env var overrides
	if path == "" {
		if err := config.applyEnvironmentVariables(); err != nil {
			return nil, err
		}
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.applyEnvironmentVariables(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() error {
	if val := os.Getenv("STROM_TIMEZONE"); val != "" {
		c.Timezone = val
	}

	floats := []struct {
		env    string
		target *float64
	}{
		{"STROM_EL_AVGIFT_PER_KWH", &c.Tariff.ElAvgiftPerKwh},
		{"STROM_PAASLAG_PER_KWH", &c.Tariff.PaaslagPerKwh},
		{"STROM_FASTPRIS_KR", &c.Tariff.FastprisKr},
		{"STROM_GRID_DAY_RATE_ORE", &c.Grid.DayRateOre},
		{"STROM_GRID_NIGHT_RATE_ORE", &c.Grid.NightRateOre},
	}
	for _, f := range floats {
		val := os.Getenv(f.env)
		if val == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return &ConfigError{Field: f.env, Message: fmt.Sprintf("not a number: %q", val)}
		}
		*f.target = parsed
	}

	if val := os.Getenv("STROM_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}

	return nil
}

// Location resolves the configured time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ConfigError{Field: "timezone", Message: err.Error()}
	}
	return loc, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("timezone %q is not a known location", c.Timezone))
	}

	if c.Tariff.ElAvgiftPerKwh < 0 {
		errors = append(errors, "tariff.el_avgift_per_kwh cannot be negative")
	}
	if c.Tariff.PaaslagPerKwh < 0 {
		errors = append(errors, "tariff.paaslag_per_kwh cannot be negative")
	}
	if c.Tariff.FastprisKr < 0 {
		errors = append(errors, "tariff.fastpris_kr cannot be negative")
	}

	// Grid day window
	if c.Grid.DayStartHour < 0 || c.Grid.DayStartHour > 23 {
		errors = append(errors, "grid.day_start_hour must be between 0 and 23")
	}
	if c.Grid.DayEndHour < 1 || c.Grid.DayEndHour > 24 {
		errors = append(errors, "grid.day_end_hour must be between 1 and 24")
	}
	if c.Grid.DayStartHour >= c.Grid.DayEndHour {
		errors = append(errors, "grid.day_start_hour must be before grid.day_end_hour")
	}
	if c.Grid.DayRateOre < 0 || c.Grid.NightRateOre < 0 {
		errors = append(errors, "grid rates cannot be negative")
	}

	for i, step := range c.Grid.FastleddSteps {
		if step.Name == "" {
			errors = append(errors, fmt.Sprintf("grid.fastledd_steps[%d].name is required", i))
		}
		if step.ToKw != 0 && step.ToKw <= step.FromKw {
			errors = append(errors, fmt.Sprintf("grid.fastledd_steps[%d] has to_kw not above from_kw", i))
		}
		if i > 0 && step.FromKw < c.Grid.FastleddSteps[i-1].FromKw {
			errors = append(errors, fmt.Sprintf("grid.fastledd_steps[%d] is out of order", i))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
