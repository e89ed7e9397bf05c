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
)

// EstimateAllowance estimates the strømstønad in kroner for consumptionKwh at a spot
// price excluding VAT. Prices below the threshold give a negative estimate, which is
// returned as-is.
func EstimateAllowance(spotPriceExVAT, consumptionKwh float64) float64 {
	return math.Round((spotPriceExVAT - subsidyThresholdPerKwh) * subsidyCoverage * consumptionKwh * subsidyGrossUp)
}
