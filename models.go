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
	"time"
)

// Measurement represents one hourly meter reading
type Measurement struct {
	From         time.Time `json:"from" yaml:"from"`
	To           time.Time `json:"to" yaml:"to"`
	Consumption  float64   `json:"consumption" yaml:"consumption"`   // kWh
	Cost         float64   `json:"cost" yaml:"cost"`                 // Kroner
	UnitPrice    float64   `json:"unitPrice" yaml:"unitPrice"`       // Kroner per kWh, VAT included
	UnitPriceVAT float64   `json:"unitPriceVAT" yaml:"unitPriceVAT"` // VAT portion of UnitPrice
}

// TotalUsage holds the aggregate usage figures for a month
type TotalUsage struct {
	Consumption     float64 `json:"consumption" yaml:"consumption"`
	ConsumptionUnit string  `json:"consumptionUnit" yaml:"consumptionUnit"`
	Cost            float64 `json:"cost" yaml:"cost"`
	UnitPrice       float64 `json:"unitPrice" yaml:"unitPrice"`
	UnitPriceVAT    float64 `json:"unitPriceVAT" yaml:"unitPriceVAT"`
}

// Month represents a named billing period and its hourly readings
type Month struct {
	MonthName    string        `json:"monthName" yaml:"monthName"`
	Measurements []Measurement `json:"measurements" yaml:"measurements"`
	// TotalUsage is optional; when nil it is derived from Measurements
	TotalUsage *TotalUsage `json:"totalUsage,omitempty" yaml:"totalUsage,omitempty"`
}

// Fastledd is the fixed monthly component of the grid fee
type Fastledd struct {
	Name string  `json:"name" yaml:"name"`
	Cost float64 `json:"cost" yaml:"cost"` // Kroner
}

// EnergyBand is one consumption band of the variable grid fee
type EnergyBand struct {
	Consume float64 `json:"consume" yaml:"consume"` // kWh
	Cost    float64 `json:"cost" yaml:"cost"`       // Øre
}

// Energiledd is the variable grid fee split into day and night bands
type Energiledd struct {
	Dag  EnergyBand `json:"dag" yaml:"dag"`
	Natt EnergyBand `json:"natt" yaml:"natt"`
}

// NettleieInput is the grid fee schedule for a month
type NettleieInput struct {
	Fastledd   Fastledd   `json:"fastledd" yaml:"fastledd"`
	Energiledd Energiledd `json:"energiledd" yaml:"energiledd"`
}

// TariffConstants are the fixed supplier and government tariff figures
type TariffConstants struct {
	ElAvgiftPerKwh float64 `json:"elAvgiftPerKwh" yaml:"el_avgift_per_kwh"` // Øre per kWh
	PaaslagPerKwh  float64 `json:"paaslagPerKwh" yaml:"paaslag_per_kwh"`    // Kroner per kWh
	FastprisKr     float64 `json:"fastprisKr" yaml:"fastpris_kr"`           // Kroner per month
}

// DailyAggregate holds the totals for one calendar day
type DailyAggregate struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Usage float64 `json:"usage"`
	Cost  float64 `json:"cost"`
	VAT   float64 `json:"vat"`
}

// DayBreakdown is a DailyAggregate with the day's subsidy estimate applied
type DayBreakdown struct {
	DailyAggregate
	EstimatedAllowance float64 `json:"estimatedAllowance"`
	Diff               float64 `json:"diff"`     // Cost minus allowance
	UnitCost           float64 `json:"unitCost"` // Kroner per kWh
}

// MonthlyReport holds every computed figure for a month
type MonthlyReport struct {
	MonthName       string `json:"monthName"`
	ConsumptionUnit string `json:"consumptionUnit"`

	Consumption  float64 `json:"consumption"`
	Cost         float64 `json:"cost"`
	UnitPrice    float64 `json:"unitPrice"`
	UnitPriceVAT float64 `json:"unitPriceVAT"`

	SpotPrice          float64 `json:"spotPrice"`          // Markup removed, VAT included
	SpotPriceExVAT     float64 `json:"spotPriceExVat"`     // Markup and VAT removed
	EstimatedAllowance float64 `json:"estimatedAllowance"` // Rounded
	EffectiveCost      float64 `json:"effectiveCost"`      // Rounded

	CostWithoutMarkup          float64 `json:"costWithoutMarkup"`
	AvgPriceWithoutMarkup      float64 `json:"avgPriceWithoutMarkup"`
	AvgPriceWithoutMarkupExVAT float64 `json:"avgPriceWithoutMarkupExVat"`

	Nettleie    NettleieInput `json:"nettleie"`
	SumNettleie float64       `json:"sumNettleie"` // Rounded
	FastprisKr  float64       `json:"fastprisKr"`
	TotalCost   float64       `json:"totalCost"` // Rounded

	DaysCounted int     `json:"daysCounted"`
	CostPerDay  float64 `json:"costPerDay"`

	LastRegistered time.Time      `json:"lastRegistered"`
	Days           []DayBreakdown `json:"days"` // Date descending
}
