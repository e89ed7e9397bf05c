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
)

// InvalidDateComponentError is returned when a date component cannot be padded to two digits
type InvalidDateComponentError struct {
	Component string
	Value     int
}

func (e *InvalidDateComponentError) Error() string {
	return fmt.Sprintf("invalid date component %s: %d does not fit in two digits", e.Component, e.Value)
}

// DivisionByZeroError is returned when an average is requested over an empty set
type DivisionByZeroError struct {
	Quantity string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero computing %s", e.Quantity)
}

// MalformedInputError represents a measurement or month document that is not well formed
type MalformedInputError struct {
	Field   string
	Index   int // Measurement index, -1 when not applicable
	Message string
}

func (e *MalformedInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed input at measurements[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("malformed input for %s: %s", e.Field, e.Message)
}

// ValidationError represents a configuration or input validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for %s (%s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// ExportError represents a failure rendering a report to a file format
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
