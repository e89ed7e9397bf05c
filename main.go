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
	"os"
	"time"
	_ "time/tzdata"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command-line application
func newApp() *cli.App {
	return &cli.App{
		Name:    "strombudget",
		Usage:   "Monthly electricity cost report with grid fee and strømstønad estimate",
		Version: GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "",
				Usage:   "Path to configuration file",
				EnvVars: []string{"STROM_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "Write logs as JSON",
			},
		},
		Commands: []*cli.Command{
			reportCommand(),
			daysCommand(),
			exportCommand(),
			versionCommand(),
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "Month document (.json, .yaml or .yml)",
		Required: true,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file (default: stdout)",
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render the full monthly report",
		Flags: []cli.Flag{
			inputFlag(),
			outputFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "markdown",
				Usage:   "Output format (markdown, html)",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			report, err := rt.summarize(c.String("input"))
			if err != nil {
				return err
			}

			switch c.String("format") {
			case "markdown", "md":
				return NewReporter(rt.location, rt.logger).GenerateReport(report, c.String("output"))
			case "html":
				return NewHTMLReporter(rt.location, rt.logger).GenerateHTMLReport(report, c.String("output"))
			default:
				return &ValidationError{Field: "format", Value: c.String("format"), Message: "must be markdown or html"}
			}
		},
	}
}

func daysCommand() *cli.Command {
	return &cli.Command{
		Name:  "days",
		Usage: "Render the per-day breakdown only",
		Flags: []cli.Flag{inputFlag(), outputFlag()},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			report, err := rt.summarize(c.String("input"))
			if err != nil {
				return err
			}
			return NewReporter(rt.location, rt.logger).GenerateDays(report, c.String("output"))
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the monthly report to a spreadsheet or PDF",
		Flags: []cli.Flag{
			inputFlag(),
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "xlsx",
				Usage:   "Export format (xlsx, pdf)",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			report, err := rt.summarize(c.String("input"))
			if err != nil {
				return err
			}
			if err := NewExporter(rt.location, rt.logger).Export(report, c.String("format"), c.String("output")); err != nil {
				return err
			}
			rt.logger.UserMessage("Wrote %s report for %s to %s", c.String("format"), report.MonthName, c.String("output"))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version and exit",
		Action: func(c *cli.Context) error {
			fmt.Println(ReadBuildInfo())
			return nil
		},
	}
}

// runtime bundles what every report command needs
type runtime struct {
	config   *Config
	location *time.Location
	logger   *Logger
}

// newRuntime loads and validates configuration and sets up logging
func newRuntime(c *cli.Context) (*runtime, error) {
	debug := c.Bool("debug")
	logger := newLoggerFor(debug, c.Bool("json-logs"))
	logger.Info("Starting strombudget", "version", GetVersion())

	configPath := c.String("config")
	logger.Info("Loading configuration", "config_file", configPath)
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if config.Debug && !debug {
		// Recreate logger with debug enabled
		logger = newLoggerFor(true, c.Bool("json-logs"))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	location, err := config.Location()
	if err != nil {
		return nil, err
	}

	return &runtime{
		config:   config,
		location: location,
		logger:   logger,
	}, nil
}

func newLoggerFor(debug, json bool) *Logger {
	if json {
		return NewJSONLogger(debug)
	}
	return NewLogger(debug)
}

// summarize loads a month document and computes its report
func (rt *runtime) summarize(inputPath string) (*MonthlyReport, error) {
	tariff := NewGridTariff(rt.config.Grid, rt.location)
	loader := NewMonthLoader(tariff, rt.logger)

	month, nettleie, err := loader.Load(inputPath)
	if err != nil {
		return nil, err
	}

	summarizer := NewSummarizer(rt.config.Tariff, rt.location, rt.logger)
	report, err := summarizer.Summarize(month, nettleie)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", month.MonthName, err)
	}

	return report, nil
}
