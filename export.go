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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders monthly reports to spreadsheet and PDF files
type Exporter struct {
	location *time.Location
	logger   *Logger
}

// NewExporter creates a new exporter
func NewExporter(location *time.Location, logger *Logger) *Exporter {
	return &Exporter{
		location: location,
		logger:   logger,
	}
}

// summaryRow is one label/value line shared by the XLSX and PDF summaries
type summaryRow struct {
	label string
	value interface{}
}

// summaryRows lists the monthly figures in report order
func (e *Exporter) summaryRows(report *MonthlyReport) []summaryRow {
	return []summaryRow{
		{"Måned", report.MonthName},
		{"Data frem til", FormatRegisteredAt(report.LastRegistered, e.location)},
		{"Forbruk (" + report.ConsumptionUnit + ")", report.Consumption},
		{"Strømkostnad (kr)", report.Cost},
		{"Spotpris med mva (kr/kWh)", report.SpotPrice},
		{"Spotpris uten mva (kr/kWh)", report.SpotPriceExVAT},
		{"Forbruk snitt med mva (kr/kWh)", report.AvgPriceWithoutMarkup},
		{"Forbruk snitt uten mva (kr/kWh)", report.AvgPriceWithoutMarkupExVAT},
		{"Estimert stønad (kr)", report.EstimatedAllowance},
		{"Faktisk strømkostnad (kr)", report.EffectiveCost},
		{"Fastledd " + report.Nettleie.Fastledd.Name + " (kr)", report.Nettleie.Fastledd.Cost},
		{"Energiledd dag (kr)", report.Nettleie.Energiledd.Dag.Cost / 100},
		{"Energiledd natt (kr)", report.Nettleie.Energiledd.Natt.Cost / 100},
		{"Sum nettleie (kr)", report.SumNettleie},
		{"Fastpris strøm (kr)", report.FastprisKr},
		{"Sum (kr)", report.TotalCost},
		{"Dager", report.DaysCounted},
		{"Kostnad per dag (kr)", report.CostPerDay},
	}
}

// Export writes report in format ("xlsx" or "pdf") to outputPath
func (e *Exporter) Export(report *MonthlyReport, format, outputPath string) error {
	if outputPath == "" {
		return &ValidationError{Field: "output", Message: "an output file is required for " + format}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "xlsx":
		data, err = e.BuildXLSX(report)
	case "pdf":
		data, err = e.BuildPDF(report)
	default:
		return &ValidationError{Field: "format", Value: format, Message: "must be xlsx or pdf"}
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return &ExportError{Format: format, Err: err}
	}

	e.logger.LogExport(format, outputPath)
	return nil
}

// BuildXLSX renders a workbook with a summary sheet and a per-day sheet
func (e *Exporter) BuildXLSX(report *MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "oppsummering"
	daysSheet := "per dag"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, &ExportError{Format: "xlsx", Err: err}
	}
	if _, err := f.NewSheet(daysSheet); err != nil {
		return nil, &ExportError{Format: "xlsx", Err: err}
	}

	for i, row := range e.summaryRows(report) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row.value)
	}

	headers := []string{"Dato", "Bruk (kWh)", "Kostnad (kr)", "Mva (kr)", "Forbruk (kr/kWh)", "Stønad (kr)", "Faktisk (kr)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(daysSheet, cell, header)
	}
	for i, day := range report.Days {
		row := i + 2
		values := []interface{}{day.Date, day.Usage, day.Cost, day.VAT, day.UnitCost, day.EstimatedAllowance, day.Diff}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(daysSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, &ExportError{Format: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}

// BuildPDF renders a one-page statement with the summary and the day table
func (e *Exporter) BuildPDF(report *MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 8, tr(fmt.Sprintf("Strømforbruk for %s", report.MonthName)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, row := range e.summaryRows(report) {
		pdf.CellFormat(80, 6, tr(row.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, tr(pdfValue(row.value)), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Day table
	widths := []float64{28, 25, 25, 30, 25, 25}
	headers := []string{"Dato", "Bruk", "Kostnad", "Forbruk", "Stønad", "Faktisk"}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 6, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, day := range report.Days {
		cells := []string{
			day.Date,
			FormatKwh(day.Usage, "kwh"),
			FormatKr(day.Cost),
			FormatOerePerKwh(day.UnitCost),
			FormatKr(day.EstimatedAllowance),
			FormatKr(day.Diff),
		}
		for i, cell := range cells {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

// pdfValue formats a summary value for the PDF column
func pdfValue(value interface{}) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%.2f", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
