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

const (
	// DefaultElAvgiftPerKwh is the government electricity levy in øre per kWh
	DefaultElAvgiftPerKwh = 15.41

	// DefaultPaaslagPerKwh is the supplier markup in kroner per kWh
	DefaultPaaslagPerKwh = 0.01

	// DefaultFastprisKr is the supplier's fixed monthly fee in kroner
	DefaultFastprisKr = 39.0

	// DefaultTimezone is used for calendar-day bucketing
	DefaultTimezone = "Europe/Oslo"
)

// Strømstønad parameters: 90% of the spot price above the threshold is covered,
// grossed up by 1.25 to the VAT-inclusive equivalent.
const (
	subsidyThresholdPerKwh = 0.7
	subsidyCoverage        = 0.9
	subsidyGrossUp         = 1.25
)

// vatExclusionFactor strips 25% VAT from a VAT-inclusive price (1/1.25)
const vatExclusionFactor = 0.8

// Date layouts
const (
	dayKeyLayout           = "2006-01-02"
	chartLabelLayout       = "02.01"
	registeredAtLayout     = "02.01.2006, 15:04:05"
	defaultConsumptionUnit = "kWh"
)
