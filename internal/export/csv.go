// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jeranaias/tokenpress/internal/stats"
)

// =============================================================================
// CSV EXPORTER
// =============================================================================

// CSVExporter exports the per-record details of a usage report as CSV.
// Reports without details export the totals as a single row.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export converts a report to CSV.
func (e *CSVExporter) Export(rep *stats.Report) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(rep.Details) > 0 {
		if err := w.Write([]string{
			"timestamp", "file", "original_tokens", "compressed_tokens",
			"tokens_saved", "compression_ratio", "savings_percent", "level",
			"format", "estimated", "cost_usd",
		}); err != nil {
			return nil, err
		}
		for _, r := range rep.Details {
			cost := ""
			if r.Cost != nil {
				cost = strconv.FormatFloat(r.Cost.CostUSD, 'f', 2, 64)
			}
			row := []string{
				r.Timestamp.Format(time.RFC3339),
				r.SubjectPath,
				strconv.Itoa(r.OriginalTokens),
				strconv.Itoa(r.CompressedTokens),
				strconv.Itoa(r.TokensSaved),
				strconv.FormatFloat(r.CompressionRatio, 'f', 3, 64),
				strconv.FormatFloat(r.SavingsPercent, 'f', 1, 64),
				string(r.Level),
				string(r.Format),
				strconv.FormatBool(r.Estimated),
				cost,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{
			"start", "end", "total_compressions", "total_original_tokens",
			"total_compressed_tokens", "total_tokens_saved",
			"average_compression_ratio", "total_cost_usd", "cost_estimated",
		}); err != nil {
			return nil, err
		}
		row := []string{
			rep.Start.Format(time.RFC3339),
			rep.End.Format(time.RFC3339),
			strconv.Itoa(rep.TotalCompressions),
			strconv.Itoa(rep.TotalOriginalTokens),
			strconv.Itoa(rep.TotalCompressedTokens),
			strconv.Itoa(rep.TotalTokensSaved),
			strconv.FormatFloat(rep.AverageCompressionRatio, 'f', 3, 64),
			strconv.FormatFloat(rep.TotalCostUSD, 'f', 2, 64),
			strconv.FormatBool(rep.CostEstimated),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string {
	return ".csv"
}

// MimeType returns the MIME type for CSV.
func (e *CSVExporter) MimeType() string {
	return "text/csv"
}
