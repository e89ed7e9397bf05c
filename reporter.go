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
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// Reporter generates markdown reports from monthly reports
type Reporter struct {
	location *time.Location
	logger   *Logger
}

// NewReporter creates a new report generator
func NewReporter(location *time.Location, logger *Logger) *Reporter {
	return &Reporter{
		location: location,
		logger:   logger,
	}
}

// GenerateReport writes a markdown report to outputPath, or stdout when empty
func (r *Reporter) GenerateReport(report *MonthlyReport, outputPath string) error {
	return writeToPath(outputPath, func(w io.Writer) error {
		r.WriteReport(w, report)
		return nil
	}, r.logger, "markdown")
}

// GenerateDays writes only the per-day table
func (r *Reporter) GenerateDays(report *MonthlyReport, outputPath string) error {
	return writeToPath(outputPath, func(w io.Writer) error {
		r.writeDays(w, report)
		return nil
	}, r.logger, "markdown")
}

// WriteReport writes every report section to w
func (r *Reporter) WriteReport(w io.Writer, report *MonthlyReport) {
	r.writeHeader(w, report)
	r.writeSpotPrices(w, report)
	r.writeUsage(w, report)
	r.writeNettleie(w, report)
	r.writeTotals(w, report)
	r.writePerDayCost(w, report)
	r.writeDays(w, report)
	r.writeFooter(w)
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "# Strømforbruk for %s\n\n", report.MonthName)
	fmt.Fprintf(w, "**Kostnad for %s:** %s kroner (%s)\n\n",
		report.MonthName,
		formatRounded(report.Cost),
		FormatKwh(report.Consumption, report.ConsumptionUnit),
	)
	fmt.Fprintf(w, "**Data frem til:** %s\n\n", FormatRegisteredAt(report.LastRegistered, r.location))
}

// writeSpotPrices writes the spot price table
func (r *Reporter) writeSpotPrices(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "## Spotpriser\n\n")
	fmt.Fprintf(w, "| | Med mva | Uten mva |\n")
	fmt.Fprintf(w, "|---|---|---|\n")
	fmt.Fprintf(w, "| Spotpris | %s | %s |\n",
		FormatOerePerKwh(report.SpotPrice),
		FormatOerePerKwh(report.SpotPriceExVAT),
	)
	fmt.Fprintf(w, "| Forbruk snitt | %s | %s |\n\n",
		FormatOerePerKwh(report.AvgPriceWithoutMarkup),
		FormatOerePerKwh(report.AvgPriceWithoutMarkupExVAT),
	)
}

// writeUsage writes the energy cost and subsidy section
func (r *Reporter) writeUsage(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "## Strømforbruk\n\n")
	fmt.Fprintf(w, "| Post | Beløp |\n")
	fmt.Fprintf(w, "|---|---|\n")
	fmt.Fprintf(w, "| Totalpris for %s | %s |\n", report.MonthName, FormatKr(report.Cost))
	fmt.Fprintf(w, "| Estimert stønad | - %s |\n", FormatKr(report.EstimatedAllowance))
	fmt.Fprintf(w, "| Faktisk strømkostnad | %s |\n\n", FormatKr(report.EffectiveCost))
}

// writeNettleie writes the grid fee section
func (r *Reporter) writeNettleie(w io.Writer, report *MonthlyReport) {
	n := report.Nettleie

	fmt.Fprintf(w, "## Nettleie\n\n")
	fmt.Fprintf(w, "| Post | Beløp |\n")
	fmt.Fprintf(w, "|---|---|\n")
	fmt.Fprintf(w, "| Fastledd %s | %s kr |\n", n.Fastledd.Name, formatPlain(n.Fastledd.Cost))
	fmt.Fprintf(w, "| Energiledd dag (%s) | %s |\n",
		FormatKwh(n.Energiledd.Dag.Consume, "kwh"),
		FormatKr(n.Energiledd.Dag.Cost/100),
	)
	fmt.Fprintf(w, "| Energiledd natt (%s) | %s |\n\n",
		FormatKwh(n.Energiledd.Natt.Consume, "kwh"),
		FormatKr(n.Energiledd.Natt.Cost/100),
	)
}

// writeTotals writes the monthly total section
func (r *Reporter) writeTotals(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "## Totalkostnader for %s\n\n", report.MonthName)
	fmt.Fprintf(w, "| Post | Beløp |\n")
	fmt.Fprintf(w, "|---|---|\n")
	fmt.Fprintf(w, "| Fastpris strøm | %s kr |\n", formatPlain(report.FastprisKr))
	fmt.Fprintf(w, "| Sum nettleie | %s |\n", FormatKr(report.SumNettleie))
	fmt.Fprintf(w, "| Strømkostnader | %s |\n", FormatKr(report.Cost))
	fmt.Fprintf(w, "| Strømstønad | - %s |\n", FormatKr(report.EstimatedAllowance))
	fmt.Fprintf(w, "| **Sum** | **%s** |\n\n", FormatKr(report.TotalCost))
}

// writePerDayCost writes the average daily cost
func (r *Reporter) writePerDayCost(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "## Kostnader per dag (%d dager totalt)\n\n", report.DaysCounted)
	fmt.Fprintf(w, "**Kost:** %s\n\n", FormatKr(report.CostPerDay))
}

// writeDays writes the per-day table, newest day first
func (r *Reporter) writeDays(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, "## Per dag\n\n")

	if len(report.Days) == 0 {
		fmt.Fprintf(w, "_Ingen målinger._\n\n")
		return
	}

	fmt.Fprintf(w, "| Dato | Kostnad | Bruk | Forbruk | Stønad | Faktisk |\n")
	fmt.Fprintf(w, "|---|---|---|---|---|---|\n")
	for _, day := range report.Days {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s %s |\n",
			day.Date,
			FormatKr(day.Cost),
			FormatKwh(day.Usage, "kwh"),
			FormatOerePerKwh(day.UnitCost),
			FormatKr(day.EstimatedAllowance),
			diffIndicator(day.Diff),
			FormatKr(day.Diff),
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "_Generert av strombudget %s_\n", GetVersion())
}

// diffIndicator marks days whose cost exceeded the subsidy
func diffIndicator(diff float64) string {
	if diff > 0 {
		return "🔴"
	}
	return "🟢"
}

// formatPlain prints a figure without forcing decimals
func formatPlain(value float64) string {
	return fmt.Sprintf("%g", value)
}

// writeToPath opens outputPath (stdout when empty) and runs write against it.
// Write, flush and close failures are returned.
func writeToPath(outputPath string, write func(io.Writer) error, logger *Logger, format string) (err error) {
	var out io.Writer = os.Stdout
	if outputPath != "" {
		file, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create report file: %w", createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close report file: %w", closeErr)
			}
		}()
		out = file
	}

	if err := writeBuffered(out, write); err != nil {
		return fmt.Errorf("failed to write %s report: %w", format, err)
	}

	if outputPath != "" {
		logger.LogExport(format, outputPath)
	}
	return nil
}

// writeBuffered runs write through a buffer and reports the first write error on flush
func writeBuffered(w io.Writer, write func(io.Writer) error) error {
	buffered := bufio.NewWriter(w)
	if err := write(buffered); err != nil {
		return err
	}
	return buffered.Flush()
}
