// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParse_NoArgs(t *testing.T) {
	cmd, _ := Parse(nil)
	if cmd != CmdHelp {
		t.Errorf("no args: got %d, want CmdHelp", cmd)
	}
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"run", []string{"run", "main.go"}, CmdRun},
		{"compress alias", []string{"compress", "main.go"}, CmdRun},
		{"stats", []string{"stats"}, CmdStats},
		{"usage alias", []string{"usage"}, CmdStats},
		{"export", []string{"export"}, CmdExport},
		{"config", []string{"config", "show"}, CmdConfig},
		{"dashboard", []string{"dashboard"}, CmdDashboard},
		{"dash alias", []string{"dash"}, CmdDashboard},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := Parse(tt.argv)
			if cmd != tt.want {
				t.Errorf("Parse(%v) = %d, want %d", tt.argv, cmd, tt.want)
			}
		})
	}
}

func TestParse_UnknownWordIsRunFile(t *testing.T) {
	cmd, args := Parse([]string{"src/main.go"})
	if cmd != CmdRun {
		t.Fatalf("got %d, want CmdRun", cmd)
	}
	if len(args.Files) != 1 || args.Files[0] != "src/main.go" {
		t.Errorf("files: %v", args.Files)
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"-q", "--json", "--model", "claude-opus-4", "stats"})
	if cmd != CmdStats {
		t.Fatalf("got %d, want CmdStats", cmd)
	}
	if !args.Quiet || !args.JSON {
		t.Errorf("flags: %+v", args)
	}
	if args.Model != "claude-opus-4" {
		t.Errorf("model: %q", args.Model)
	}
}

func TestParse_GlobalFlagsAfterCommand(t *testing.T) {
	_, args := Parse([]string{"stats", "--model=claude-opus-4", "--json"})
	if args.Model != "claude-opus-4" || !args.JSON {
		t.Errorf("flags after command: %+v", args)
	}
}

func TestParse_RunFlags(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		level  string
		format string
		files  int
	}{
		{"long flags", []string{"run", "--level", "minimal", "--format", "json", "a.go"}, "minimal", "json", 1},
		{"short flags", []string{"run", "-l", "full", "-f", "text", "a.go", "b.go"}, "full", "text", 2},
		{"equals form", []string{"run", "--level=signatures", "a.go"}, "signatures", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args := Parse(tt.argv)
			if args.Level != tt.level || args.Format != tt.format {
				t.Errorf("level=%q format=%q", args.Level, args.Format)
			}
			if len(args.Files) != tt.files {
				t.Errorf("files: %v", args.Files)
			}
		})
	}
}

func TestParse_WindowFlags(t *testing.T) {
	_, args := Parse([]string{"stats", "--days", "7", "--details", "--limit", "25"})
	if args.Days != 7 || !args.Details || args.Limit != 25 {
		t.Errorf("window: %+v", args)
	}

	_, args = Parse([]string{"stats", "--from=-1m", "--to=now", "--period=week"})
	if args.From != "-1m" || args.To != "now" || args.Period != "week" {
		t.Errorf("window equals form: %+v", args)
	}
}

func TestParse_ExportDefaults(t *testing.T) {
	_, args := Parse([]string{"export"})
	if args.ExportFormat != "markdown" || args.OutputDir != "." {
		t.Errorf("defaults: %+v", args)
	}

	_, args = Parse([]string{"export", "--export-format", "csv", "-o", "reports", "--days", "30"})
	if args.ExportFormat != "csv" || args.OutputDir != "reports" || args.Days != 30 {
		t.Errorf("export flags: %+v", args)
	}
}

func TestParse_ConfigArgs(t *testing.T) {
	_, args := Parse([]string{"config", "set", "dashboard.theme", "light"})
	if args.Subcommand != "set" || args.ConfigKey != "dashboard.theme" || args.ConfigVal != "light" {
		t.Errorf("config: %+v", args)
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		in, def string
		want    string
		wantErr bool
	}{
		{"full", "full", "full", false},
		{"SIGNATURES", "full", "signatures", false},
		{"min", "full", "minimal", false},
		{"", "minimal", "minimal", false},
		{"bogus", "full", "", true},
	}

	for _, tt := range tests {
		got, err := normalizeLevel(tt.in, tt.def)
		if (err != nil) != tt.wantErr {
			t.Errorf("normalizeLevel(%q): err = %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("normalizeLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFormat(t *testing.T) {
	if _, err := normalizeFormat("yaml", "text"); err == nil {
		t.Error("unknown format should fail")
	}
	got, err := normalizeFormat("", "summary")
	if err != nil || got != "summary" {
		t.Errorf("default format: %q, %v", got, err)
	}
}

func TestSelectorFromArgs(t *testing.T) {
	sel := selectorFromArgs(Args{Days: 7, From: "-1m", To: "now", Period: "week"})
	if sel.RelativeDays != 7 || sel.StartDate != "-1m" || sel.EndDate != "now" || sel.Period != "week" {
		t.Errorf("selector: %+v", sel)
	}
}
