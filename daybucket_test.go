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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadWithZero(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "00"},
		{1, "01"},
		{9, "09"},
		{10, "10"},
		{31, "31"},
		{99, "99"},
	}

	for _, tt := range tests {
		got, err := padWithZero("day", tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPadWithZero_OutOfRange(t *testing.T) {
	for _, n := range []int{100, 250, -1} {
		_, err := padWithZero("month", n)
		require.Error(t, err)

		var dateErr *InvalidDateComponentError
		require.True(t, errors.As(err, &dateErr))
		assert.Equal(t, "month", dateErr.Component)
		assert.Equal(t, n, dateErr.Value)
	}
}

func TestDayKey(t *testing.T) {
	oslo := osloLocation(t)

	key, err := DayKey(time.Date(2023, 3, 5, 14, 0, 0, 0, oslo), oslo)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-05", key)

	// 23:30 UTC on the 31st is already the 1st in Oslo
	key, err = DayKey(time.Date(2023, 1, 31, 23, 30, 0, 0, time.UTC), oslo)
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01", key)

	key, err = DayKey(time.Date(2023, 1, 31, 23, 30, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-31", key)
}

func TestAggregateByDay_Empty(t *testing.T) {
	days, err := AggregateByDay(nil, time.UTC)
	require.NoError(t, err)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestAggregateByDay_SumsPerDay(t *testing.T) {
	oslo := osloLocation(t)
	measurements := []Measurement{
		hourly(oslo, 2023, 1, 1, 0, 2, 3, 0.25),
		hourly(oslo, 2023, 1, 1, 1, 4, 5, 0.25),
		hourly(oslo, 2023, 1, 2, 0, 1, 1.5, 0.3),
	}

	days, err := AggregateByDay(measurements, oslo)
	require.NoError(t, err)
	require.Len(t, days, 2)

	byDate := indexByDate(days)
	require.Contains(t, byDate, "2023-01-01")
	require.Contains(t, byDate, "2023-01-02")

	assert.InDelta(t, 6.0, byDate["2023-01-01"].Usage, 1e-9)
	assert.InDelta(t, 8.0, byDate["2023-01-01"].Cost, 1e-9)
	assert.InDelta(t, 1.5, byDate["2023-01-01"].VAT, 1e-9)
	assert.InDelta(t, 1.0, byDate["2023-01-02"].Usage, 1e-9)
	assert.InDelta(t, 0.3, byDate["2023-01-02"].VAT, 1e-9)
}

func TestAggregateByDay_SameStartSharesBucket(t *testing.T) {
	from := time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)
	measurements := []Measurement{
		{From: from, To: from.Add(time.Hour), Consumption: 1, Cost: 2},
		{From: from, To: from.Add(time.Hour), Consumption: 3, Cost: 4},
	}

	days, err := AggregateByDay(measurements, time.UTC)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 4.0, days[0].Usage)
	assert.Equal(t, 6.0, days[0].Cost)
}

func TestAggregateByDay_PreservesTotals(t *testing.T) {
	oslo := osloLocation(t)
	var measurements []Measurement
	for day := 1; day <= 5; day++ {
		for hour := 0; hour < 24; hour += 6 {
			measurements = append(measurements, hourly(oslo, 2023, 2, day, hour, float64(day)+0.5, float64(hour)*0.1+1, 0.2))
		}
	}

	days, err := AggregateByDay(measurements, oslo)
	require.NoError(t, err)

	var wantUsage, wantCost, gotUsage, gotCost float64
	for _, m := range measurements {
		wantUsage += m.Consumption
		wantCost += m.Cost
	}
	for _, d := range days {
		gotUsage += d.Usage
		gotCost += d.Cost
	}

	assert.InDelta(t, wantUsage, gotUsage, 1e-9)
	assert.InDelta(t, wantCost, gotCost, 1e-9)
}

func TestAggregateByDay_OrderIndependent(t *testing.T) {
	oslo := osloLocation(t)
	measurements := []Measurement{
		hourly(oslo, 2023, 1, 3, 5, 1, 2, 0.2),
		hourly(oslo, 2023, 1, 1, 5, 2, 3, 0.2),
		hourly(oslo, 2023, 1, 3, 6, 3, 4, 0.2),
		hourly(oslo, 2023, 1, 2, 5, 4, 5, 0.2),
	}
	reversed := make([]Measurement, len(measurements))
	for i, m := range measurements {
		reversed[len(measurements)-1-i] = m
	}

	forward, err := AggregateByDay(measurements, oslo)
	require.NoError(t, err)
	backward, err := AggregateByDay(reversed, oslo)
	require.NoError(t, err)

	assert.Equal(t, indexByDate(forward), indexByDate(backward))
}

func TestCountUniqueDays(t *testing.T) {
	oslo := osloLocation(t)

	count, err := CountUniqueDays(nil, oslo)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = CountUniqueDays([]Measurement{
		hourly(oslo, 2023, 1, 1, 0, 1, 1, 0),
		hourly(oslo, 2023, 1, 1, 23, 1, 1, 0),
		hourly(oslo, 2023, 1, 2, 0, 1, 1, 0),
		hourly(oslo, 2023, 1, 4, 12, 1, 1, 0),
	}, oslo)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func indexByDate(days []DailyAggregate) map[string]DailyAggregate {
	byDate := make(map[string]DailyAggregate, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	return byDate
}
