// Copyright 2025 Matthew Gall <me@matthewgall.dev>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"sort"
	"time"
)

// FastleddStep is one capacity step of the fixed grid fee
type FastleddStep struct {
	Name   string  `yaml:"name"`
	FromKw float64 `yaml:"from_kw"`
	ToKw   float64 `yaml:"to_kw"` // 0 means no upper bound
	Cost   float64 `yaml:"cost"`  // Kroner per month
}

// GridConfig describes the grid operator's tariff
type GridConfig struct {
	DayRateOre     float64        `yaml:"day_rate_ore"`   // Øre per kWh
	NightRateOre   float64        `yaml:"night_rate_ore"` // Øre per kWh
	DayStartHour   int            `yaml:"day_start_hour"`
	DayEndHour     int            `yaml:"day_end_hour"`
	WeekendIsNight bool           `yaml:"weekend_is_night"`
	FastleddSteps  []FastleddStep `yaml:"fastledd_steps"`
}

// peakDays is how many daily peaks are averaged to select the fastledd step
const peakDays = 3

// GridTariff computes grid fees from hourly measurements
type GridTariff struct {
	config   GridConfig
	location *time.Location
}

// NewGridTariff creates a new grid tariff calculator
func NewGridTariff(config GridConfig, location *time.Location) *GridTariff {
	if location == nil {
		location = time.Local
	}
	return &GridTariff{
		config:   config,
		location: location,
	}
}

// Compute derives the month's grid fee from its measurements
func (g *GridTariff) Compute(measurements []Measurement) (NettleieInput, error) {
	var nettleie NettleieInput
	dailyPeaks := make(map[string]float64)

	for _, m := range measurements {
		// Split energy into day and night bands
		if g.isNightRate(m.From) {
			nettleie.Energiledd.Natt.Consume += m.Consumption
		} else {
			nettleie.Energiledd.Dag.Consume += m.Consumption
		}

		key, err := DayKey(m.From, g.location)
		if err != nil {
			return NettleieInput{}, err
		}
		if kw := averageLoadKw(m); kw > dailyPeaks[key] {
			dailyPeaks[key] = kw
		}
	}

	nettleie.Energiledd.Dag.Cost = nettleie.Energiledd.Dag.Consume * g.config.DayRateOre
	nettleie.Energiledd.Natt.Cost = nettleie.Energiledd.Natt.Consume * g.config.NightRateOre

	if step := g.selectStep(capacityFromPeaks(dailyPeaks)); step != nil {
		nettleie.Fastledd = Fastledd{Name: step.Name, Cost: step.Cost}
	}

	return nettleie, nil
}

// isNightRate determines if the given time falls within night rate hours
func (g *GridTariff) isNightRate(t time.Time) bool {
	local := t.In(g.location)

	if g.config.WeekendIsNight {
		if weekday := local.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
			return true
		}
	}

	hour := local.Hour()
	return hour < g.config.DayStartHour || hour >= g.config.DayEndHour
}

// selectStep finds the highest step starting at or below capacity. Capacity below
// the first step uses the first step; steps are ordered by FromKw.
func (g *GridTariff) selectStep(capacity float64) *FastleddStep {
	steps := g.config.FastleddSteps
	if len(steps) == 0 {
		return nil
	}

	selected := &steps[0]
	for i := range steps {
		if capacity >= steps[i].FromKw {
			selected = &steps[i]
		}
	}

	return selected
}

// averageLoadKw converts a measurement's energy to average load over its interval
func averageLoadKw(m Measurement) float64 {
	hours := m.To.Sub(m.From).Hours()
	if hours <= 0 {
		return m.Consumption
	}
	return m.Consumption / hours
}

// capacityFromPeaks averages the highest daily peaks
func capacityFromPeaks(dailyPeaks map[string]float64) float64 {
	if len(dailyPeaks) == 0 {
		return 0
	}

	peaks := make([]float64, 0, len(dailyPeaks))
	for _, peak := range dailyPeaks {
		peaks = append(peaks, peak)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(peaks)))

	if len(peaks) > peakDays {
		peaks = peaks[:peakDays]
	}

	sum := 0.0
	for _, peak := range peaks {
		sum += peak
	}
	return sum / float64(len(peaks))
}
