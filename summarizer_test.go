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
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func osloLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	return loc
}

// hourly builds a one-hour measurement starting at the given local hour
func hourly(loc *time.Location, year int, month time.Month, day, hour int, consumption, cost, unitPriceVAT float64) Measurement {
	from := time.Date(year, month, day, hour, 0, 0, 0, loc)
	unitPrice := 0.0
	if consumption != 0 {
		unitPrice = cost / consumption
	}
	return Measurement{
		From:         from,
		To:           from.Add(time.Hour),
		Consumption:  consumption,
		Cost:         cost,
		UnitPrice:    unitPrice,
		UnitPriceVAT: unitPriceVAT,
	}
}

func defaultConstants() TariffConstants {
	return TariffConstants{
		ElAvgiftPerKwh: 15.41,
		PaaslagPerKwh:  0.01,
		FastprisKr:     39,
	}
}

func januaryMonth(loc *time.Location) *Month {
	first := time.Date(2023, 1, 1, 0, 0, 0, 0, loc)
	second := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	return &Month{
		MonthName: "januar",
		Measurements: []Measurement{
			{From: first, To: first.Add(time.Hour), Consumption: 10, Cost: 10, UnitPrice: 1.0, UnitPriceVAT: 0.2},
			{From: second, To: second.Add(time.Hour), Consumption: 5, Cost: 6, UnitPrice: 1.2, UnitPriceVAT: 0.24},
		},
	}
}

func januaryNettleie() NettleieInput {
	return NettleieInput{
		Fastledd: Fastledd{Name: "5-10 kW", Cost: 100},
		Energiledd: Energiledd{
			Dag:  EnergyBand{Consume: 10, Cost: 500},
			Natt: EnergyBand{Consume: 5, Cost: 200},
		},
	}
}

func TestSummarize_TwoDayMonth(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())

	report, err := s.Summarize(januaryMonth(oslo), januaryNettleie())
	require.NoError(t, err)

	assert.Equal(t, "januar", report.MonthName)
	assert.Equal(t, "kWh", report.ConsumptionUnit)
	assert.InDelta(t, 15.0, report.Consumption, 1e-9)
	assert.InDelta(t, 16.0, report.Cost, 1e-9)
	assert.Equal(t, 107.0, report.SumNettleie)
	assert.Equal(t, 2, report.DaysCounted)

	// Derived unit prices: 16/15 and a consumption-weighted VAT of 3.2/15
	assert.InDelta(t, 16.0/15.0, report.UnitPrice, 1e-9)
	assert.InDelta(t, 3.2/15.0, report.UnitPriceVAT, 1e-9)
	assert.InDelta(t, 16.0/15.0-0.01, report.SpotPrice, 1e-9)
	assert.InDelta(t, 16.0/15.0-0.01-3.2/15.0, report.SpotPriceExVAT, 1e-9)

	assert.Equal(t, 2.0, report.EstimatedAllowance)
	assert.Equal(t, 14.0, report.EffectiveCost)

	assert.InDelta(t, 13.5385, report.CostWithoutMarkup, 1e-9)
	assert.InDelta(t, 13.5385/15.0, report.AvgPriceWithoutMarkup, 1e-9)
	assert.InDelta(t, 13.5385/15.0*0.8, report.AvgPriceWithoutMarkupExVAT, 1e-9)

	// round(39 + 107 + 16 - 2)
	assert.Equal(t, 160.0, report.TotalCost)
	assert.Equal(t, 80.0, report.CostPerDay)
	assert.Equal(t, 39.0, report.FastprisKr)
	assert.Equal(t, januaryNettleie(), report.Nettleie)

	assert.True(t, report.LastRegistered.Equal(time.Date(2023, 1, 2, 1, 0, 0, 0, oslo)))
}

func TestSummarize_DayBreakdown(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())

	report, err := s.Summarize(januaryMonth(oslo), januaryNettleie())
	require.NoError(t, err)
	require.Len(t, report.Days, 2)

	newest := report.Days[0]
	assert.Equal(t, "2023-01-02", newest.Date)
	assert.InDelta(t, 5.0, newest.Usage, 1e-9)
	assert.InDelta(t, 6.0, newest.Cost, 1e-9)
	assert.InDelta(t, 1.2, newest.VAT, 1e-9)
	assert.InDelta(t, 1.2, newest.UnitCost, 1e-9)
	assert.Equal(t, 1.0, newest.EstimatedAllowance)
	assert.InDelta(t, 5.0, newest.Diff, 1e-9)

	oldest := report.Days[1]
	assert.Equal(t, "2023-01-01", oldest.Date)
	assert.Equal(t, 2.0, oldest.EstimatedAllowance)
	assert.InDelta(t, 8.0, oldest.Diff, 1e-9)
	assert.InDelta(t, 1.0, oldest.UnitCost, 1e-9)
}

func TestSummarize_Idempotent(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())
	month := januaryMonth(oslo)

	first, err := s.Summarize(month, januaryNettleie())
	require.NoError(t, err)
	second, err := s.Summarize(month, januaryNettleie())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize_NoMeasurements(t *testing.T) {
	s := NewSummarizer(defaultConstants(), time.UTC, NewDiscardLogger())

	_, err := s.Summarize(&Month{MonthName: "februar", Measurements: []Measurement{}}, januaryNettleie())
	require.Error(t, err)

	var divErr *DivisionByZeroError
	assert.True(t, errors.As(err, &divErr))
}

func TestSummarize_NilMonth(t *testing.T) {
	s := NewSummarizer(defaultConstants(), time.UTC, NewDiscardLogger())

	_, err := s.Summarize(nil, NettleieInput{})
	require.Error(t, err)

	var inputErr *MalformedInputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestSummarize_RejectsNegativeConsumption(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())
	month := januaryMonth(oslo)
	month.Measurements[1].Consumption = -1

	_, err := s.Summarize(month, januaryNettleie())
	require.Error(t, err)

	var inputErr *MalformedInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, 1, inputErr.Index)
	assert.Equal(t, "consumption", inputErr.Field)
}

func TestSummarize_RejectsUnusableTotalsAndFees(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())

	month := januaryMonth(oslo)
	month.TotalUsage = &TotalUsage{Consumption: math.Inf(1), Cost: math.NaN()}
	report, err := s.Summarize(month, januaryNettleie())
	assert.Nil(t, report)
	var inputErr *MalformedInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "totalUsage.consumption", inputErr.Field)

	nettleie := januaryNettleie()
	nettleie.Fastledd.Cost = -500
	report, err = s.Summarize(januaryMonth(oslo), nettleie)
	assert.Nil(t, report)
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "nettleie.fastledd.cost", inputErr.Field)
}

func TestSummarize_SuppliedTotalUsage(t *testing.T) {
	oslo := osloLocation(t)
	s := NewSummarizer(defaultConstants(), oslo, NewDiscardLogger())
	month := januaryMonth(oslo)
	month.TotalUsage = &TotalUsage{
		Consumption:     100,
		ConsumptionUnit: "kWh",
		Cost:            150,
		UnitPrice:       1.5,
		UnitPriceVAT:    0.3,
	}

	report, err := s.Summarize(month, januaryNettleie())
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Consumption)
	assert.Equal(t, 150.0, report.Cost)
	assert.InDelta(t, 1.19, report.SpotPriceExVAT, 1e-9)
	// round((1.19-0.7) * 0.9 * 100 * 1.25) = round(55.125)
	assert.Equal(t, 55.0, report.EstimatedAllowance)
	assert.Equal(t, 95.0, report.EffectiveCost)
	// Day count still comes from the measurements
	assert.Equal(t, 2, report.DaysCounted)
}

func TestSummarize_ZeroConsumption(t *testing.T) {
	s := NewSummarizer(defaultConstants(), time.UTC, NewDiscardLogger())
	from := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	month := &Month{
		MonthName: "juni",
		Measurements: []Measurement{
			{From: from, To: from.Add(time.Hour)},
		},
	}

	report, err := s.Summarize(month, NettleieInput{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.AvgPriceWithoutMarkup)
	assert.Equal(t, 0.0, report.AvgPriceWithoutMarkupExVAT)
	require.Len(t, report.Days, 1)
	assert.Equal(t, 0.0, report.Days[0].UnitCost)
	assert.Equal(t, 39.0, report.TotalCost)
}

func TestDayBreakdowns_SortedNewestFirst(t *testing.T) {
	s := NewSummarizer(defaultConstants(), time.UTC, NewDiscardLogger())
	measurements := []Measurement{
		hourly(time.UTC, 2023, 1, 1, 0, 1, 1, 0.2),
		hourly(time.UTC, 2023, 1, 3, 0, 1, 1, 0.2),
		hourly(time.UTC, 2023, 1, 2, 0, 1, 1, 0.2),
	}

	days, err := s.DayBreakdowns(measurements, 1.0)
	require.NoError(t, err)

	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}
	assert.Equal(t, []string{"2023-01-03", "2023-01-02", "2023-01-01"}, dates)
}

func TestDayBreakdowns_UsesGivenSpotPrice(t *testing.T) {
	s := NewSummarizer(defaultConstants(), time.UTC, NewDiscardLogger())
	measurements := []Measurement{hourly(time.UTC, 2023, 1, 1, 0, 100, 80, 0.2)}

	days, err := s.DayBreakdowns(measurements, 1.5)
	require.NoError(t, err)
	require.Len(t, days, 1)

	// round((1.5-0.7) * 0.9 * 100 * 1.25) = 90
	assert.Equal(t, 90.0, days[0].EstimatedAllowance)
	assert.InDelta(t, -10.0, days[0].Diff, 1e-9)
}

func TestMonthTotals_DefaultsUnit(t *testing.T) {
	month := &Month{TotalUsage: &TotalUsage{Consumption: 5, Cost: 7}}
	assert.Equal(t, "kWh", MonthTotals(month).ConsumptionUnit)

	month.TotalUsage.ConsumptionUnit = "MWh"
	assert.Equal(t, "MWh", MonthTotals(month).ConsumptionUnit)
}

func TestSumNettleie(t *testing.T) {
	assert.Equal(t, 107.0, SumNettleie(januaryNettleie()))

	// 125 + 1.49 + 0.0 rounds down
	assert.Equal(t, 126.0, SumNettleie(NettleieInput{
		Fastledd:   Fastledd{Cost: 125},
		Energiledd: Energiledd{Dag: EnergyBand{Cost: 149}},
	}))
}

func TestLastRegistered(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	measurements := []Measurement{
		{From: base.Add(5 * time.Hour), To: base.Add(6 * time.Hour)},
		{From: base.Add(9 * time.Hour), To: base.Add(10 * time.Hour)},
		{From: base, To: base.Add(time.Hour)},
	}

	assert.Equal(t, base.Add(10*time.Hour), lastRegistered(measurements))
	assert.True(t, lastRegistered(nil).IsZero())
}
