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
	"math"
	"time"
)

// FormatKr formats a value as whole kroner
func FormatKr(value float64) string {
	return fmt.Sprintf("%s kr", formatRounded(value))
}

// FormatOerePerKwh formats a kroner-per-kWh price as whole øre per kWh
func FormatOerePerKwh(kroner float64) string {
	return fmt.Sprintf("%s øre/kwh", formatRounded(kroner*100))
}

// FormatKwh formats consumption as whole kWh
func FormatKwh(value float64, unit string) string {
	if unit == "" {
		unit = defaultConsumptionUnit
	}
	return fmt.Sprintf("%s %s", formatRounded(value), unit)
}

// FormatRegisteredAt formats a timestamp in Norwegian day-first notation
func FormatRegisteredAt(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(registeredAtLayout)
}

// formatRounded renders a rounded figure without a negative zero
func formatRounded(value float64) string {
	rounded := math.Round(value)
	if rounded == 0 {
		rounded = 0
	}
	return fmt.Sprintf("%.0f", rounded)
}
