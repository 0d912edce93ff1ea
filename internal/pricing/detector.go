// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CLIENT DETECTION
// =============================================================================

// Detector resolves which client/model pair applies to this process.
//
// Detection runs at most once; the result is memoized for the process
// lifetime, so later environment or config changes are not observed. The
// detector is an explicit instance (not package state) so tests can build
// their own with a fake environment.
type Detector struct {
	configPath string
	lookupEnv  func(string) string

	once     sync.Once
	clientID string
	modelID  string
}

// frontendMarkers maps a front-end environment marker to the client id and
// the default model for that integration. Checked in order.
var frontendMarkers = []struct {
	envVar   string
	clientID string
	modelID  string
}{
	{"CLAUDECODE", "claude-code", "claude-sonnet-4"},
	{"CLAUDE_CODE_ENTRYPOINT", "claude-code", "claude-sonnet-4"},
	{"CURSOR_TRACE_ID", "cursor", "gpt-4o"},
	{"GEMINI_CLI", "gemini-cli", "gemini-2-5-pro"},
	{"CONTINUE_GLOBAL_DIR", "continue", "claude-sonnet-4"},
}

// overrideVars are generic environment overrides naming a catalog model.
// Checked in order after front-end markers.
var overrideVars = []string{"TOKENPRESS_MODEL", "ANTHROPIC_MODEL"}

// NewDetector creates a detector that consults the config file at
// configPath (may be empty) and the real process environment.
func NewDetector(configPath string) *Detector {
	return &Detector{
		configPath: configPath,
		lookupEnv:  os.Getenv,
	}
}

// NewDetectorWithEnv creates a detector with an explicit environment lookup.
// Used by tests to simulate front-end markers without mutating the process.
func NewDetectorWithEnv(configPath string, lookupEnv func(string) string) *Detector {
	return &Detector{
		configPath: configPath,
		lookupEnv:  lookupEnv,
	}
}

// Detect returns the resolved client and model ids.
//
// Resolution order, first match wins:
//  1. Config file naming a catalog model
//  2. Front-end environment markers (Claude Code, Cursor, Gemini CLI, Continue)
//  3. Generic override variables naming a catalog model
//  4. The fixed default model
//
// The result is computed once and returned unchanged on every later call.
func (d *Detector) Detect() (clientID, modelID string) {
	d.once.Do(func() {
		d.clientID, d.modelID = d.probe()
	})
	return d.clientID, d.modelID
}

func (d *Detector) probe() (string, string) {
	if model, ok := d.configModel(); ok {
		return "config", model
	}

	for _, m := range frontendMarkers {
		if d.lookupEnv(m.envVar) != "" {
			return m.clientID, m.modelID
		}
	}

	for _, v := range overrideVars {
		if model := d.lookupEnv(v); model != "" && IsKnown(model) {
			return "override", model
		}
	}

	return "default", DefaultModelID
}

// configModel reads the optional config file and returns its model field
// when it names a catalog model. Any read or parse failure is treated as
// "no config" rather than an error.
func (d *Detector) configModel() (string, bool) {
	if d.configPath == "" {
		return "", false
	}

	data, err := os.ReadFile(d.configPath)
	if err != nil {
		return "", false
	}

	var cfg struct {
		Model string `toml:"model"`
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return "", false
	}

	if cfg.Model == "" || !IsKnown(cfg.Model) {
		return "", false
	}
	return cfg.Model, true
}
