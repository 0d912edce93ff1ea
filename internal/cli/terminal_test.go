// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderLabel_Width(t *testing.T) {
	// Width is measured through lipgloss so the check holds under any
	// color profile.
	if got := lipgloss.Width(RenderLabel("key")); got != 20 {
		t.Errorf("default label width = %d, want 20", got)
	}
	if got := lipgloss.Width(RenderLabel("key", 30)); got != 30 {
		t.Errorf("explicit label width = %d, want 30", got)
	}
}

func TestGetTerminalWidth_FallsBackWithoutTTY(t *testing.T) {
	// Test binaries run with piped stdout, so the size probe fails and the
	// default width applies.
	if IsStdoutTTY() {
		t.Skip("stdout is a terminal")
	}
	if got := GetTerminalWidth(); got != defaultTerminalWidth {
		t.Errorf("width = %d, want %d", got, defaultTerminalWidth)
	}
}

func TestColorProfile_AsciiWhenColorsDisabled(t *testing.T) {
	if ColorsEnabled() {
		t.Skip("colors enabled in this environment")
	}
	if got := GetColorProfile(); got != termenv.Ascii {
		t.Errorf("profile = %v, want Ascii", got)
	}
}

func TestRequiresTTY(t *testing.T) {
	// Test binaries run with stdin on /dev/null.
	if IsTTY() {
		t.Skip("stdin is a terminal")
	}

	err := RequiresTTY("show the dashboard")
	if err == nil {
		t.Fatal("expected an error without a TTY")
	}
	if !strings.Contains(err.Error(), "show the dashboard") {
		t.Errorf("error should name the operation: %v", err)
	}
}

func TestTTYRequiredError_Message(t *testing.T) {
	withOp := &TTYRequiredError{Operation: "prompt"}
	if !strings.Contains(withOp.Error(), "cannot prompt") {
		t.Errorf("message: %q", withOp.Error())
	}
	bare := &TTYRequiredError{}
	if !strings.Contains(bare.Error(), "not a terminal") {
		t.Errorf("message: %q", bare.Error())
	}
}
