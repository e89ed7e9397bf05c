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
	"encoding/base64"
	"fmt"
	"time"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator handles chart generation
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match the HTML report dark theme
	}
}

// GenerateDailyUsageChart creates a bar chart of kWh per day
func (cg *ChartGenerator) GenerateDailyUsageChart(report *MonthlyReport) (string, error) {
	days := chronologicalDays(report.Days)
	if len(days) == 0 {
		return "", fmt.Errorf("no daily data available")
	}

	labels := make([]string, len(days))
	usage := make([]float64, len(days))
	for i, day := range days {
		labels[i] = chartLabel(day.Date)
		usage[i] = day.Usage
	}

	p, err := charts.BarRender(
		[][]float64{usage},
		charts.TitleTextOptionFunc(fmt.Sprintf("Forbruk per dag, %s", report.MonthName)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Forbruk (kWh)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render usage chart: %w", err)
	}

	return encodeChart(p)
}

// GenerateDailyCostChart creates a line chart of cost, subsidy and actual cost per day
func (cg *ChartGenerator) GenerateDailyCostChart(report *MonthlyReport) (string, error) {
	days := chronologicalDays(report.Days)
	if len(days) == 0 {
		return "", fmt.Errorf("no daily data available")
	}

	labels := make([]string, len(days))
	cost := make([]float64, len(days))
	allowance := make([]float64, len(days))
	diff := make([]float64, len(days))
	for i, day := range days {
		labels[i] = chartLabel(day.Date)
		cost[i] = day.Cost
		allowance[i] = day.EstimatedAllowance
		diff[i] = day.Diff
	}

	p, err := charts.LineRender(
		[][]float64{cost, allowance, diff},
		charts.TitleTextOptionFunc(fmt.Sprintf("Kostnad per dag, %s", report.MonthName)),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Kostnad (kr)", "Stønad (kr)", "Faktisk (kr)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render cost chart: %w", err)
	}

	return encodeChart(p)
}

// encodeChart converts a rendered chart to base64 PNG for embedding in HTML
func encodeChart(p *charts.Painter) (string, error) {
	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// chronologicalDays returns the breakdown oldest day first
func chronologicalDays(days []DayBreakdown) []DayBreakdown {
	ordered := make([]DayBreakdown, len(days))
	for i, day := range days {
		ordered[len(days)-1-i] = day
	}
	return ordered
}

// chartLabel shortens a day key for the x axis
func chartLabel(dayKey string) string {
	date, err := time.Parse(dayKeyLayout, dayKey)
	if err != nil {
		return dayKey
	}
	return date.Format(chartLabelLayout)
}
