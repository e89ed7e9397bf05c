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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// rawMeasurement mirrors Measurement with optional fields so missing values can be detected
type rawMeasurement struct {
	From         *string  `json:"from" yaml:"from"`
	To           *string  `json:"to" yaml:"to"`
	Consumption  *float64 `json:"consumption" yaml:"consumption"`
	Cost         *float64 `json:"cost" yaml:"cost"`
	UnitPrice    *float64 `json:"unitPrice" yaml:"unitPrice"`
	UnitPriceVAT *float64 `json:"unitPriceVAT" yaml:"unitPriceVAT"`
}

// rawTotalUsage mirrors TotalUsage with optional figures
type rawTotalUsage struct {
	Consumption     *float64 `json:"consumption" yaml:"consumption"`
	ConsumptionUnit string   `json:"consumptionUnit" yaml:"consumptionUnit"`
	Cost            *float64 `json:"cost" yaml:"cost"`
	UnitPrice       *float64 `json:"unitPrice" yaml:"unitPrice"`
	UnitPriceVAT    *float64 `json:"unitPriceVAT" yaml:"unitPriceVAT"`
}

// rawMonthDocument is the on-disk month document
type rawMonthDocument struct {
	MonthName    string           `json:"monthName" yaml:"monthName"`
	Measurements []rawMeasurement `json:"measurements" yaml:"measurements"`
	TotalUsage   *rawTotalUsage   `json:"totalUsage" yaml:"totalUsage"`
	Nettleie     *NettleieInput   `json:"nettleie" yaml:"nettleie"`
}

// MonthDocument is a decoded and validated month document
type MonthDocument struct {
	Month    *Month
	Nettleie *NettleieInput // nil when the document carries no grid fee
}

// MonthLoader reads month documents and supplies the grid fee when it is missing
type MonthLoader struct {
	tariff *GridTariff
	logger *Logger
}

// NewMonthLoader creates a new month loader
func NewMonthLoader(tariff *GridTariff, logger *Logger) *MonthLoader {
	return &MonthLoader{
		tariff: tariff,
		logger: logger.WithComponent("loader"),
	}
}

// Load reads a month document from path and returns the month and its grid fee
func (l *MonthLoader) Load(path string) (*Month, NettleieInput, error) {
	l.logger.Info("Loading month", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NettleieInput{}, fmt.Errorf("failed to read month file: %w", err)
	}

	doc, err := DecodeMonthDocument(data, formatFromPath(path))
	if err != nil {
		return nil, NettleieInput{}, err
	}

	l.logger.Info("Month loaded",
		"month", doc.Month.MonthName,
		"measurements", len(doc.Month.Measurements),
	)

	if doc.Nettleie != nil {
		return doc.Month, *doc.Nettleie, nil
	}

	if l.tariff == nil {
		return nil, NettleieInput{}, &MalformedInputError{
			Field:   "nettleie",
			Index:   -1,
			Message: "document has no grid fee and no grid tariff is configured",
		}
	}

	nettleie, err := l.tariff.Compute(doc.Month.Measurements)
	if err != nil {
		return nil, NettleieInput{}, err
	}
	l.logger.LogNettleie(nettleie.Fastledd.Name, nettleie.Energiledd.Dag.Consume, nettleie.Energiledd.Natt.Consume)

	return doc.Month, nettleie, nil
}

// formatFromPath picks the document format from the file extension
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// DecodeMonthDocument decodes and validates a JSON or YAML month document
func DecodeMonthDocument(data []byte, format string) (*MonthDocument, error) {
	var raw rawMonthDocument

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &MalformedInputError{Field: "document", Index: -1, Message: err.Error()}
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&raw); err != nil {
			return nil, &MalformedInputError{Field: "document", Index: -1, Message: err.Error()}
		}
	default:
		return nil, &ValidationError{Field: "format", Value: format, Message: "must be json or yaml"}
	}

	if raw.Measurements == nil {
		return nil, &MalformedInputError{Field: "measurements", Index: -1, Message: "measurements must be a list"}
	}

	measurements := make([]Measurement, len(raw.Measurements))
	for i, r := range raw.Measurements {
		m, err := r.toMeasurement(i)
		if err != nil {
			return nil, err
		}
		measurements[i] = m
	}

	if err := ValidateMeasurements(measurements); err != nil {
		return nil, err
	}

	var total *TotalUsage
	if raw.TotalUsage != nil {
		converted, err := raw.TotalUsage.toTotalUsage()
		if err != nil {
			return nil, err
		}
		if err := ValidateTotalUsage(converted); err != nil {
			return nil, err
		}
		total = converted
	}

	if raw.Nettleie != nil {
		if err := ValidateNettleie(*raw.Nettleie); err != nil {
			return nil, err
		}
	}

	return &MonthDocument{
		Month: &Month{
			MonthName:    raw.MonthName,
			Measurements: measurements,
			TotalUsage:   total,
		},
		Nettleie: raw.Nettleie,
	}, nil
}

// toTotalUsage converts a raw total, rejecting missing figures
func (r *rawTotalUsage) toTotalUsage() (*TotalUsage, error) {
	figures := []struct {
		field string
		value *float64
	}{
		{"totalUsage.consumption", r.Consumption},
		{"totalUsage.cost", r.Cost},
		{"totalUsage.unitPrice", r.UnitPrice},
		{"totalUsage.unitPriceVAT", r.UnitPriceVAT},
	}
	for _, f := range figures {
		if f.value == nil {
			return nil, &MalformedInputError{Field: f.field, Index: -1, Message: "field is required"}
		}
	}

	return &TotalUsage{
		Consumption:     *r.Consumption,
		ConsumptionUnit: r.ConsumptionUnit,
		Cost:            *r.Cost,
		UnitPrice:       *r.UnitPrice,
		UnitPriceVAT:    *r.UnitPriceVAT,
	}, nil
}

// toMeasurement converts a raw measurement, rejecting missing fields
func (r rawMeasurement) toMeasurement(index int) (Measurement, error) {
	missing := func(field string) error {
		return &MalformedInputError{Field: field, Index: index, Message: "field is required"}
	}

	if r.From == nil {
		return Measurement{}, missing("from")
	}
	if r.To == nil {
		return Measurement{}, missing("to")
	}
	if r.Consumption == nil {
		return Measurement{}, missing("consumption")
	}
	if r.Cost == nil {
		return Measurement{}, missing("cost")
	}
	if r.UnitPrice == nil {
		return Measurement{}, missing("unitPrice")
	}
	if r.UnitPriceVAT == nil {
		return Measurement{}, missing("unitPriceVAT")
	}

	from, err := time.Parse(time.RFC3339, *r.From)
	if err != nil {
		return Measurement{}, &MalformedInputError{Field: "from", Index: index, Message: err.Error()}
	}
	to, err := time.Parse(time.RFC3339, *r.To)
	if err != nil {
		return Measurement{}, &MalformedInputError{Field: "to", Index: index, Message: err.Error()}
	}

	return Measurement{
		From:         from,
		To:           to,
		Consumption:  *r.Consumption,
		Cost:         *r.Cost,
		UnitPrice:    *r.UnitPrice,
		UnitPriceVAT: *r.UnitPriceVAT,
	}, nil
}

// ValidateMeasurements checks that every measurement carries usable values
func ValidateMeasurements(measurements []Measurement) error {
	for i, m := range measurements {
		if m.From.IsZero() {
			return &MalformedInputError{Field: "from", Index: i, Message: "timestamp is required"}
		}
		if m.To.Before(m.From) {
			return &MalformedInputError{Field: "to", Index: i, Message: "interval ends before it starts"}
		}

		values := []struct {
			field       string
			value       float64
			nonNegative bool
		}{
			{"consumption", m.Consumption, true},
			{"cost", m.Cost, false},
			{"unitPrice", m.UnitPrice, false},
			{"unitPriceVAT", m.UnitPriceVAT, false},
		}
		for _, v := range values {
			if err := checkValue(v.field, i, v.value, v.nonNegative); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateTotalUsage checks a supplied month total. A nil total is valid.
func ValidateTotalUsage(total *TotalUsage) error {
	if total == nil {
		return nil
	}

	if err := checkValue("totalUsage.consumption", -1, total.Consumption, true); err != nil {
		return err
	}
	if err := checkValue("totalUsage.cost", -1, total.Cost, false); err != nil {
		return err
	}
	if err := checkValue("totalUsage.unitPrice", -1, total.UnitPrice, false); err != nil {
		return err
	}
	return checkValue("totalUsage.unitPriceVAT", -1, total.UnitPriceVAT, false)
}

// ValidateNettleie checks that every grid fee figure is finite and not negative
func ValidateNettleie(nettleie NettleieInput) error {
	values := []struct {
		field string
		value float64
	}{
		{"nettleie.fastledd.cost", nettleie.Fastledd.Cost},
		{"nettleie.energiledd.dag.consume", nettleie.Energiledd.Dag.Consume},
		{"nettleie.energiledd.dag.cost", nettleie.Energiledd.Dag.Cost},
		{"nettleie.energiledd.natt.consume", nettleie.Energiledd.Natt.Consume},
		{"nettleie.energiledd.natt.cost", nettleie.Energiledd.Natt.Cost},
	}
	for _, v := range values {
		if err := checkValue(v.field, -1, v.value, true); err != nil {
			return err
		}
	}
	return nil
}

// checkValue rejects non-finite values, and negative ones when nonNegative is set
func checkValue(field string, index int, value float64, nonNegative bool) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &MalformedInputError{Field: field, Index: index, Message: "value must be finite"}
	}
	if nonNegative && value < 0 {
		return &MalformedInputError{Field: field, Index: index, Message: "value cannot be negative"}
	}
	return nil
}
