// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compress

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/jeranaias/tokenpress/internal/stats"
)

// =============================================================================
// COMPRESSOR RUNNER
// =============================================================================

// DefaultTimeout bounds a single compression run when the config gives none.
const DefaultTimeout = 60 * time.Second

// Options configures a single compression run.
type Options struct {
	Level  stats.Level
	Format stats.OutputFormat
	// MaxFileBytes skips files larger than this. 0 means unlimited.
	MaxFileBytes int64
}

// Result is the outcome of one compression run.
type Result struct {
	// Output is the compressor's stdout (the compressed rendition).
	Output string
	// Stderr is the compressor's diagnostic output, kept for error reporting.
	Stderr string
	// Record is the usage record persisted for this run; zero-valued when
	// recording was disabled.
	Record stats.Record
	// Recorded reports whether the run was ingested into the stats store.
	Recorded bool
}

// Runner executes the external compressor and records each run.
type Runner struct {
	bin     string
	args    []string
	timeout time.Duration

	// tracker may be nil, in which case runs execute without being recorded.
	tracker *stats.Tracker
}

// NewRunner creates a runner for the compressor at bin. Extra args are
// passed before the per-run level/format flags. A zero timeout means
// DefaultTimeout.
func NewRunner(bin string, args []string, timeout time.Duration, tracker *stats.Tracker) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{bin: bin, args: args, timeout: timeout, tracker: tracker}
}

// Run compresses the file at path and records the outcome.
//
// The source file being readable decides how the run is recorded: a readable
// original gives a measured record, an unreadable one an estimated record
// derived from the compressed output. The compressor failing is a hard error
// and nothing is recorded.
func (r *Runner) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	if opts.MaxFileBytes > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > opts.MaxFileBytes {
			return nil, fmt.Errorf("compress: %s exceeds max file size (%d > %d bytes)", path, info.Size(), opts.MaxFileBytes)
		}
	}

	output, stderr, err := r.invoke(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Output: output, Stderr: stderr}
	if r.tracker == nil {
		return res, nil
	}

	// Readability of the original decides measured vs estimated.
	original, readErr := os.ReadFile(path)
	var rec stats.Record
	var recErr error
	if readErr == nil {
		rec, recErr = r.tracker.RecordMeasured(path, string(original), output, opts.Level, opts.Format)
	} else {
		rec, recErr = r.tracker.RecordEstimated(path, output, opts.Level, opts.Format)
	}
	res.Record = rec
	res.Recorded = true
	if recErr != nil {
		// Persistence failure is non-fatal: the compression itself succeeded.
		return res, fmt.Errorf("compress: run succeeded but stats were not persisted: %w", recErr)
	}
	return res, nil
}

// invoke executes the compressor with the level/format flags appended.
func (r *Runner) invoke(ctx context.Context, path string, opts Options) (stdout, stderr string, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append([]string{}, r.args...)
	if opts.Level != "" {
		args = append(args, "--level", string(opts.Level))
	}
	if opts.Format != "" {
		args = append(args, "--format", string(opts.Format))
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, r.bin, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errBuf.String(), fmt.Errorf("compress: %s timed out after %v", r.bin, r.timeout)
		}
		return "", errBuf.String(), fmt.Errorf("compress: %s failed: %w (stderr: %s)", r.bin, err, bytes.TrimSpace(errBuf.Bytes()))
	}
	return outBuf.String(), errBuf.String(), nil
}
