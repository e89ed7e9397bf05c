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
	"html"
	"io"
	"time"
)

// HTMLReporter generates HTML reports from monthly reports
type HTMLReporter struct {
	location *time.Location
	charts   *ChartGenerator
	logger   *Logger
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(location *time.Location, logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		location: location,
		charts:   NewChartGenerator(),
		logger:   logger,
	}
}

// GenerateHTMLReport writes an HTML report to outputPath, or stdout when empty
func (r *HTMLReporter) GenerateHTMLReport(report *MonthlyReport, outputPath string) error {
	r.logger.Info("Generating HTML report")

	return writeToPath(outputPath, func(w io.Writer) error {
		r.WriteHTMLReport(w, report)
		return nil
	}, r.logger, "html")
}

// WriteHTMLReport writes every report section to w
func (r *HTMLReporter) WriteHTMLReport(w io.Writer, report *MonthlyReport) {
	r.writeHTMLHeader(w, report)
	r.writeHTMLSummary(w, report)
	r.writeHTMLSpotPrices(w, report)
	r.writeHTMLCosts(w, report)
	r.writeHTMLCharts(w, report)
	r.writeHTMLDays(w, report)
	r.writeHTMLFooter(w)
}

func (r *HTMLReporter) writeHTMLHeader(w io.Writer, report *MonthlyReport) {
	title := html.EscapeString(fmt.Sprintf("Strømforbruk for %s", report.MonthName))

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="nb">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        :root {
            --primary-color: #2D6CDF;
            --success-color: #00C896;
            --danger-color: #FF4D6D;
            --bg-color: #0A0F1E;
            --card-bg: #1A2332;
            --text-color: #E8EAF6;
            --text-muted: #9FA8DA;
            --border-color: #2A3550;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            padding: 20px;
        }

        .wrapper {
            max-width: 1200px;
            margin: 0 auto;
        }

        header {
            background: linear-gradient(135deg, var(--primary-color), var(--success-color));
            padding: 40px;
            border-radius: 16px;
            margin-bottom: 30px;
        }

        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 30px;
            margin-bottom: 30px;
            border: 1px solid var(--border-color);
        }

        h2 {
            margin-bottom: 16px;
        }

        table {
            width: 100%%;
            border-collapse: collapse;
        }

        th, td {
            padding: 8px 12px;
            text-align: left;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            color: var(--text-muted);
        }

        .red {
            color: var(--danger-color);
        }

        .green {
            color: var(--success-color);
        }

        .total td {
            font-weight: bold;
        }

        img.chart {
            width: 100%%;
            border-radius: 8px;
            margin-bottom: 20px;
        }

        footer {
            color: var(--text-muted);
            text-align: center;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="wrapper">
        <header>
            <h1>%s</h1>
            <p>Data frem til %s</p>
        </header>
`,
		title,
		title,
		html.EscapeString(FormatRegisteredAt(report.LastRegistered, r.location)),
	)
}

func (r *HTMLReporter) writeHTMLSummary(w io.Writer, report *MonthlyReport) {
	month := html.EscapeString(report.MonthName)

	fmt.Fprintf(w, `
        <div class="card">
            <h2>Kostnad for %s</h2>
            <table>
                <tbody>
                    <tr><td>Strømkostnad</td><td>%s kroner (%s)</td></tr>
                    <tr><td>Estimert stønad</td><td>- %s</td></tr>
                    <tr><td>Faktisk strømkostnad</td><td>%s</td></tr>
                    <tr><td>Kostnader per dag (%d dager totalt)</td><td>%s</td></tr>
                </tbody>
            </table>
        </div>
`,
		month,
		formatRounded(report.Cost),
		html.EscapeString(FormatKwh(report.Consumption, report.ConsumptionUnit)),
		FormatKr(report.EstimatedAllowance),
		FormatKr(report.EffectiveCost),
		report.DaysCounted,
		FormatKr(report.CostPerDay),
	)
}

func (r *HTMLReporter) writeHTMLSpotPrices(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, `
        <div class="card">
            <h2>Spotpriser</h2>
            <table class="spotpriser">
                <thead>
                    <tr><th></th><th>Med mva</th><th>Uten mva</th></tr>
                </thead>
                <tbody>
                    <tr><td>Spotpris</td><td>%s</td><td>%s</td></tr>
                    <tr><td>Forbruk snitt</td><td>%s</td><td>%s</td></tr>
                </tbody>
            </table>
        </div>
`,
		FormatOerePerKwh(report.SpotPrice),
		FormatOerePerKwh(report.SpotPriceExVAT),
		FormatOerePerKwh(report.AvgPriceWithoutMarkup),
		FormatOerePerKwh(report.AvgPriceWithoutMarkupExVAT),
	)
}

func (r *HTMLReporter) writeHTMLCosts(w io.Writer, report *MonthlyReport) {
	n := report.Nettleie

	fmt.Fprintf(w, `
        <div class="card">
            <h2>Totalkostnader for %s</h2>
            <table>
                <tbody>
                    <tr><td>Fastpris strøm</td><td>%s kr</td></tr>
                    <tr><td>Fastledd %s</td><td>%s kr</td></tr>
                    <tr><td>Energiledd dag (%s)</td><td>%s</td></tr>
                    <tr><td>Energiledd natt (%s)</td><td>%s</td></tr>
                    <tr><td>Sum nettleie</td><td>%s</td></tr>
                    <tr><td>Strømkostnader</td><td>%s</td></tr>
                    <tr><td>Strømstønad</td><td>- %s</td></tr>
                    <tr class="total"><td>Sum</td><td>%s</td></tr>
                </tbody>
            </table>
        </div>
`,
		html.EscapeString(report.MonthName),
		formatPlain(report.FastprisKr),
		html.EscapeString(n.Fastledd.Name),
		formatPlain(n.Fastledd.Cost),
		FormatKwh(n.Energiledd.Dag.Consume, "kwh"),
		FormatKr(n.Energiledd.Dag.Cost/100),
		FormatKwh(n.Energiledd.Natt.Consume, "kwh"),
		FormatKr(n.Energiledd.Natt.Cost/100),
		FormatKr(report.SumNettleie),
		FormatKr(report.Cost),
		FormatKr(report.EstimatedAllowance),
		FormatKr(report.TotalCost),
	)
}

// writeHTMLCharts embeds the daily charts; a chart that fails to render is skipped
func (r *HTMLReporter) writeHTMLCharts(w io.Writer, report *MonthlyReport) {
	if len(report.Days) == 0 {
		return
	}

	usageChart, err := r.charts.GenerateDailyUsageChart(report)
	if err != nil {
		r.logger.Warn("Failed to generate usage chart", "error", err)
	}
	costChart, err := r.charts.GenerateDailyCostChart(report)
	if err != nil {
		r.logger.Warn("Failed to generate cost chart", "error", err)
	}

	if usageChart == "" && costChart == "" {
		return
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>Utvikling</h2>
`)
	for _, chart := range []string{usageChart, costChart} {
		if chart == "" {
			continue
		}
		fmt.Fprintf(w, `            <img class="chart" src="data:image/png;base64,%s" alt="chart">
`, chart)
	}
	fmt.Fprintf(w, `        </div>
`)
}

func (r *HTMLReporter) writeHTMLDays(w io.Writer, report *MonthlyReport) {
	fmt.Fprintf(w, `
        <div class="card day-overview">
            <h2>Per dag</h2>
            <table>
                <thead>
                    <tr><th></th><th>Kostnad</th><th>Bruk</th><th>Forbruk</th><th>Stønad</th><th>Faktisk</th></tr>
                </thead>
                <tbody>
`)
	for _, day := range report.Days {
		class := "green"
		if day.Diff > 0 {
			class = "red"
		}
		fmt.Fprintf(w, `                    <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td class="%s">%s</td></tr>
`,
			day.Date,
			FormatKr(day.Cost),
			FormatKwh(day.Usage, "kwh"),
			FormatOerePerKwh(day.UnitCost),
			FormatKr(day.EstimatedAllowance),
			class,
			FormatKr(day.Diff),
		)
	}
	fmt.Fprintf(w, `                </tbody>
            </table>
        </div>
`)
}

func (r *HTMLReporter) writeHTMLFooter(w io.Writer) {
	fmt.Fprintf(w, `
        <footer>
            <p><em>Stønaden er et estimat basert på månedens gjennomsnittlige spotpris. Se fakturaen for endelige beløp.</em></p>
            <p>Generert av strombudget %s</p>
        </footer>
    </div>
</body>
</html>
`, html.EscapeString(GetVersion()))
}
