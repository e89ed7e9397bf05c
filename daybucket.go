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
	"fmt"
	"time"
)

// padWithZero renders a month or day number as exactly two digits
func padWithZero(component string, n int) (string, error) {
	if n > 99 || n < 0 {
		return "", &InvalidDateComponentError{Component: component, Value: n}
	}
	return fmt.Sprintf("%02d", n), nil
}

// DayKey returns the local calendar day (YYYY-MM-DD) that t falls on in loc
func DayKey(t time.Time, loc *time.Location) (string, error) {
	if loc != nil {
		t = t.In(loc)
	}

	month, err := padWithZero("month", int(t.Month()))
	if err != nil {
		return "", err
	}
	day, err := padWithZero("day", t.Day())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d-%s-%s", t.Year(), month, day), nil
}

// AggregateByDay sums usage, cost and VAT per calendar day of each measurement's start.
// The order of the returned slice is unspecified.
func AggregateByDay(measurements []Measurement, loc *time.Location) ([]DailyAggregate, error) {
	if len(measurements) == 0 {
		return []DailyAggregate{}, nil
	}

	daily := make(map[string]*DailyAggregate)
	order := make([]string, 0)

	for _, m := range measurements {
		key, err := DayKey(m.From, loc)
		if err != nil {
			return nil, err
		}

		entry, exists := daily[key]
		if !exists {
			entry = &DailyAggregate{Date: key}
			daily[key] = entry
			order = append(order, key)
		}
		entry.Usage += m.Consumption
		entry.Cost += m.Cost
		entry.VAT += m.UnitPriceVAT * m.Consumption
	}

	result := make([]DailyAggregate, 0, len(daily))
	for _, key := range order {
		result = append(result, *daily[key])
	}

	return result, nil
}

// CountUniqueDays counts the distinct calendar days that have at least one measurement
func CountUniqueDays(measurements []Measurement, loc *time.Location) (int, error) {
	seen := make(map[string]struct{})
	for _, m := range measurements {
		key, err := DayKey(m.From, loc)
		if err != nil {
			return 0, err
		}
		seen[key] = struct{}{}
	}
	return len(seen), nil
}
