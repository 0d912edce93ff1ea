// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeranaias/tokenpress/internal/stats"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports usage reports to Markdown format.
type MarkdownExporter struct {
	options *Options
	printer *message.Printer
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{
		options: opts,
		printer: message.NewPrinter(language.English),
	}
}

// Export converts a report to Markdown format.
func (e *MarkdownExporter) Export(rep *stats.Report) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var sb strings.Builder

	sb.WriteString("# Token Compression Usage Report\n\n")

	if e.options.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("- **Window**: %s to %s\n",
			formatTimestamp(rep.Start), formatTimestamp(rep.End)))
		sb.WriteString(fmt.Sprintf("- **Generated**: %s\n\n", formatTimestamp(time.Now())))
	}

	sb.WriteString("## Totals\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|---|---|\n")
	sb.WriteString(e.printer.Sprintf("| Compressions | %d |\n", rep.TotalCompressions))
	sb.WriteString(e.printer.Sprintf("| Original tokens | %d |\n", rep.TotalOriginalTokens))
	sb.WriteString(e.printer.Sprintf("| Compressed tokens | %d |\n", rep.TotalCompressedTokens))
	sb.WriteString(e.printer.Sprintf("| Tokens saved | %d |\n", rep.TotalTokensSaved))
	sb.WriteString(fmt.Sprintf("| Compression ratio | %.3f |\n", rep.AverageCompressionRatio))
	sb.WriteString(fmt.Sprintf("| Savings | %.1f%% |\n", rep.AverageSavingsPercent))

	costLabel := "Cost saved"
	if rep.CostEstimated {
		costLabel = "Cost saved (estimated)"
	}
	sb.WriteString(fmt.Sprintf("| %s | $%.2f |\n", costLabel, rep.TotalCostUSD))
	if rep.CostEstimated && rep.CostModelID != "" {
		sb.WriteString(fmt.Sprintf("| Priced as | %s |\n", rep.CostModelID))
	}
	sb.WriteString("\n")

	if len(rep.ByModel) > 0 {
		sb.WriteString("## By Model\n\n")
		sb.WriteString("| Model | Runs | Tokens saved | Cost |\n")
		sb.WriteString("|---|---|---|---|\n")

		models := make([]string, 0, len(rep.ByModel))
		for id := range rep.ByModel {
			models = append(models, id)
		}
		sort.Strings(models)
		for _, id := range models {
			mc := rep.ByModel[id]
			sb.WriteString(e.printer.Sprintf("| %s | %d | %d | $%.2f |\n",
				id, mc.Count, mc.TokensSaved, mc.CostUSD))
		}
		sb.WriteString("\n")
	}

	if e.options.IncludeDetails && len(rep.Details) > 0 {
		sb.WriteString("## Recent Compressions\n\n")
		sb.WriteString("| When | File | Saved | Ratio | Level |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, r := range rep.Details {
			sb.WriteString(e.printer.Sprintf("| %s | %s | %d | %.3f | %s |\n",
				formatTimestamp(r.Timestamp), r.SubjectPath, r.TokensSaved,
				r.CompressionRatio, r.Level))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from tokenpress on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}
