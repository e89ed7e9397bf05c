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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporter_BuildXLSX(t *testing.T) {
	exporter := NewExporter(osloLocation(t), NewDiscardLogger())

	data, err := exporter.BuildXLSX(januaryReport(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"oppsummering", "per dag"}, f.GetSheetList())

	label, err := f.GetCellValue("oppsummering", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Måned", label)
	month, err := f.GetCellValue("oppsummering", "B1")
	require.NoError(t, err)
	assert.Equal(t, "januar", month)

	rows, err := f.GetRows("per dag")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Dato", rows[0][0])
	assert.Equal(t, "2023-01-02", rows[1][0])
	assert.Equal(t, "2023-01-01", rows[2][0])
}

func TestExporter_BuildPDF(t *testing.T) {
	exporter := NewExporter(osloLocation(t), NewDiscardLogger())

	data, err := exporter.BuildPDF(januaryReport(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExporter_ExportWritesFile(t *testing.T) {
	exporter := NewExporter(osloLocation(t), NewDiscardLogger())
	dir := t.TempDir()

	for _, format := range []string{"xlsx", "pdf"} {
		path := filepath.Join(dir, "januar."+format)
		require.NoError(t, exporter.Export(januaryReport(t), format, path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestExporter_ExportErrors(t *testing.T) {
	exporter := NewExporter(osloLocation(t), NewDiscardLogger())
	report := januaryReport(t)

	var validationErr *ValidationError
	err := exporter.Export(report, "xlsx", "")
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "output", validationErr.Field)

	err = exporter.Export(report, "csv", filepath.Join(t.TempDir(), "out.csv"))
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "format", validationErr.Field)

	var exportErr *ExportError
	err = exporter.Export(report, "pdf", filepath.Join(t.TempDir(), "missing", "out.pdf"))
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "pdf", exportErr.Format)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPdfValue(t *testing.T) {
	assert.Equal(t, "1.50", pdfValue(1.5))
	assert.Equal(t, "2", pdfValue(2))
	assert.Equal(t, "januar", pdfValue("januar"))
}
