// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/tokenpress/internal/util"
)

// =============================================================================
// PERSISTENCE
// =============================================================================

// SchemaVersion is written to every persisted state file.
const SchemaVersion = "2.0"

// persistedStore is the on-disk shape of a Store. Tier maps use formatted
// string keys here; the in-memory store uses structured keys.
type persistedStore struct {
	Version string                      `json:"version"`
	Recent  []Record                    `json:"recent"`
	Daily   map[string]DailyAggregate   `json:"daily"`
	Monthly map[string]MonthlyAggregate `json:"monthly"`
	Summary Summary                     `json:"summary"`
}

// legacyStore is the pre-2.0 flat schema: one unbounded record list.
type legacyStore struct {
	Compressions []Record `json:"compressions"`
	Summary      Summary  `json:"summary"`
}

// Storage reads and writes the single JSON state file.
type Storage struct {
	path string
	now  func() time.Time
}

// NewStorage creates storage rooted at path.
func NewStorage(path string) *Storage {
	return &Storage{path: path, now: time.Now}
}

// Path returns the state file path.
func (st *Storage) Path() string {
	return st.path
}

// Load reads the persisted store.
//
// A missing or unparseable file yields a fresh empty store; corruption is
// recovered from silently rather than surfaced. Legacy-schema files are
// migrated on the way in.
func (st *Storage) Load() *Store {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return NewStore()
	}

	// Legacy detection: a flat `compressions` list and no `recent` field.
	var probe struct {
		Recent       json.RawMessage `json:"recent"`
		Compressions json.RawMessage `json:"compressions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return NewStore()
	}

	if probe.Compressions != nil && probe.Recent == nil {
		var legacy legacyStore
		if err := json.Unmarshal(data, &legacy); err != nil {
			return NewStore()
		}
		return migrateLegacy(legacy.Compressions, legacy.Summary, st.now())
	}

	var p persistedStore
	if err := json.Unmarshal(data, &p); err != nil {
		return NewStore()
	}

	s := NewStore()
	s.Recent = append(s.Recent, p.Recent...)
	s.Summary = p.Summary
	for key, agg := range p.Daily {
		k, err := ParseDayKey(key)
		if err != nil {
			continue // drop unparseable keys, keep the rest
		}
		s.Daily[k] = agg
	}
	for key, agg := range p.Monthly {
		k, err := ParseMonthKey(key)
		if err != nil {
			continue
		}
		s.Monthly[k] = agg
	}
	return s
}

// Save aggregates the store and writes it atomically, so every persisted
// file is canonical and compacted.
func (st *Storage) Save(s *Store) error {
	s.Aggregate(st.now())

	p := persistedStore{
		Version: SchemaVersion,
		Recent:  s.Recent,
		Daily:   make(map[string]DailyAggregate, len(s.Daily)),
		Monthly: make(map[string]MonthlyAggregate, len(s.Monthly)),
		Summary: s.Summary,
	}
	for k, agg := range s.Daily {
		p.Daily[k.String()] = agg
	}
	for k, agg := range s.Monthly {
		p.Monthly[k.String()] = agg
	}

	data, err := json.MarshalIndent(&p, "", "  ")
	if err != nil {
		return fmt.Errorf("stats: marshal state: %w", err)
	}

	if err := util.AtomicWriteFile(st.path, data, 0644); err != nil {
		return fmt.Errorf("stats: write state: %w", err)
	}
	return nil
}
