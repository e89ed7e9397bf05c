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
	"math"
	"sort"
	"time"
)

// Summarizer computes monthly reports from a month's measurements and grid fees.
// It holds no mutable state and may be shared between goroutines.
type Summarizer struct {
	constants TariffConstants
	location  *time.Location
	logger    *Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(constants TariffConstants, location *time.Location, logger *Logger) *Summarizer {
	if location == nil {
		location = time.Local
	}
	return &Summarizer{
		constants: constants,
		location:  location,
		logger:    logger.WithComponent("summarizer"),
	}
}

// Summarize computes the full report for a month
func (s *Summarizer) Summarize(month *Month, nettleie NettleieInput) (*MonthlyReport, error) {
	if month == nil {
		return nil, &MalformedInputError{Field: "month", Index: -1, Message: "month is required"}
	}
	if err := ValidateMeasurements(month.Measurements); err != nil {
		return nil, err
	}
	if err := ValidateTotalUsage(month.TotalUsage); err != nil {
		return nil, err
	}
	if err := ValidateNettleie(nettleie); err != nil {
		return nil, err
	}

	logger := s.logger.WithMonth(month.MonthName)
	total := MonthTotals(month)

	report := &MonthlyReport{
		MonthName:       month.MonthName,
		ConsumptionUnit: total.ConsumptionUnit,
		Consumption:     total.Consumption,
		Cost:            total.Cost,
		UnitPrice:       total.UnitPrice,
		UnitPriceVAT:    total.UnitPriceVAT,
		Nettleie:        nettleie,
		FastprisKr:      s.constants.FastprisKr,
	}

	// Spot price with and without VAT, markup removed
	report.SpotPrice = total.UnitPrice - s.constants.PaaslagPerKwh
	report.SpotPriceExVAT = report.SpotPrice - total.UnitPriceVAT

	report.EstimatedAllowance = EstimateAllowance(report.SpotPriceExVAT, total.Consumption)
	report.EffectiveCost = math.Round(total.Cost - report.EstimatedAllowance)
	logger.LogSummaryStage("estimated_allowance", report.EstimatedAllowance)

	// Cost with markup and levy stripped
	report.CostWithoutMarkup = total.Cost -
		s.constants.PaaslagPerKwh*total.Consumption -
		(s.constants.ElAvgiftPerKwh/100)*total.Consumption
	if total.Consumption != 0 {
		report.AvgPriceWithoutMarkup = report.CostWithoutMarkup / total.Consumption
		report.AvgPriceWithoutMarkupExVAT = report.AvgPriceWithoutMarkup * vatExclusionFactor
	}

	report.SumNettleie = SumNettleie(nettleie)
	logger.LogSummaryStage("sum_nettleie", report.SumNettleie)

	report.TotalCost = math.Round(s.constants.FastprisKr + report.SumNettleie + total.Cost - report.EstimatedAllowance)
	logger.LogSummaryStage("total_cost", report.TotalCost)

	days, err := CountUniqueDays(month.Measurements, s.location)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, &DivisionByZeroError{Quantity: "cost per day"}
	}
	report.DaysCounted = days
	report.CostPerDay = report.TotalCost / float64(days)

	report.LastRegistered = lastRegistered(month.Measurements)

	report.Days, err = s.DayBreakdowns(month.Measurements, report.SpotPriceExVAT)
	if err != nil {
		return nil, err
	}

	logger.Debug("Month summarized",
		"consumption", report.Consumption,
		"cost", report.Cost,
		"days", report.DaysCounted,
		"total", report.TotalCost,
	)

	return report, nil
}

// DayBreakdowns buckets measurements by day and estimates each day's allowance using
// the month's spot price excluding VAT. The result is sorted by date, newest first.
func (s *Summarizer) DayBreakdowns(measurements []Measurement, spotPriceExVAT float64) ([]DayBreakdown, error) {
	daily, err := AggregateByDay(measurements, s.location)
	if err != nil {
		return nil, err
	}
	s.logger.LogDayBuckets(len(measurements), len(daily))

	breakdown := make([]DayBreakdown, len(daily))
	for i, entry := range daily {
		allowance := EstimateAllowance(spotPriceExVAT, entry.Usage)
		breakdown[i] = DayBreakdown{
			DailyAggregate:     entry,
			EstimatedAllowance: allowance,
			Diff:               entry.Cost - allowance,
		}
		if entry.Usage != 0 {
			breakdown[i].UnitCost = entry.Cost / entry.Usage
		}
	}

	// Keys are zero-padded, so lexical order is chronological
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Date > breakdown[j].Date
	})

	return breakdown, nil
}

// MonthTotals returns the month's aggregate usage, deriving it from the
// measurements when the data source did not supply one
func MonthTotals(month *Month) TotalUsage {
	if month.TotalUsage != nil {
		total := *month.TotalUsage
		if total.ConsumptionUnit == "" {
			total.ConsumptionUnit = defaultConsumptionUnit
		}
		return total
	}

	total := TotalUsage{ConsumptionUnit: defaultConsumptionUnit}
	vat := 0.0
	for _, m := range month.Measurements {
		total.Consumption += m.Consumption
		total.Cost += m.Cost
		vat += m.UnitPriceVAT * m.Consumption
	}

	if total.Consumption != 0 {
		total.UnitPrice = total.Cost / total.Consumption
		total.UnitPriceVAT = vat / total.Consumption
	}

	return total
}

// SumNettleie sums the grid fee in kroner. Energiledd costs are stored in øre.
func SumNettleie(nettleie NettleieInput) float64 {
	return math.Round(nettleie.Energiledd.Dag.Cost/100 + nettleie.Energiledd.Natt.Cost/100 + nettleie.Fastledd.Cost)
}

// lastRegistered returns the latest interval end across measurements
func lastRegistered(measurements []Measurement) time.Time {
	var latest time.Time
	for i, m := range measurements {
		if i == 0 || m.To.After(latest) {
			latest = m.To
		}
	}
	return latest
}
