// Package weights loads the suite weight table and resolves per-suite weights.
//
// The table is a JSON object keyed by path suffix. Values are either a bare
// number or an object carrying a "weight" field:
//
//	{
//	  "login.cy.js": {"time": 61234, "weight": 12},
//	  "checkout/": 8
//	}
//
// A suite matches a key when its path ends with that key.
package weights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Precedence decides which entry wins when several suffixes match a path
type Precedence string

const (
	// PrecedenceLongest picks the longest matching suffix
	PrecedenceLongest Precedence = "longest"
	// PrecedenceLast picks the last matching entry in file order
	PrecedenceLast Precedence = "last"
)

// ParsePrecedence validates a precedence name
func ParsePrecedence(s string) (Precedence, error) {
	switch p := Precedence(s); p {
	case PrecedenceLongest, PrecedenceLast:
		return p, nil
	case "":
		return PrecedenceLongest, nil
	default:
		return "", fmt.Errorf("unknown weight precedence %q", s)
	}
}

// Entry is one suffix pattern and its weight
type Entry struct {
	Pattern string
	Weight  float64
}

// Table is the weight table in file order. The zero value is an empty table.
type Table struct {
	entries []Entry
}

// NewTable builds a table from entries in the given order
func NewTable(entries ...Entry) Table {
	return Table{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries
func (t Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in file order
func (t Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Resolve returns the weight for path, or def when no entry matches
func (t Table) Resolve(path string, def float64, precedence Precedence) float64 {
	weight := def
	matched := -1
	for _, e := range t.entries {
		if !strings.HasSuffix(path, e.Pattern) {
			continue
		}
		if precedence == PrecedenceLast || len(e.Pattern) > matched {
			weight = e.Weight
			matched = len(e.Pattern)
		}
	}
	return weight
}

// Load reads the table at path. On any failure it returns an empty table
// together with the error; callers treat that as a warning.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read weight file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("parse weight file %s: %w", path, err)
	}
	return t, nil
}

// LoadOrEmpty loads the table at path, logging a warning and returning an
// empty table when it cannot be read.
func LoadOrEmpty(path string, log logrus.FieldLogger) Table {
	t, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warnf("Weight file not found in path: %s", path)
		} else {
			log.WithError(err).Warn("Ignoring unreadable weight file, using default weights")
		}
		return Table{}
	}
	log.WithField("entries", t.Len()).Debugf("Loaded weights from %s", path)
	return t
}

// Parse decodes a weight table, keeping the key order of the document.
// A repeated key keeps its first position and takes the last value.
func Parse(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return Table{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Table{}, errors.New("weight table must be a JSON object")
	}

	var t Table
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Table{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Table{}, fmt.Errorf("unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Table{}, fmt.Errorf("key %q: %w", key, err)
		}
		weight, err := decodeWeight(raw)
		if err != nil {
			return Table{}, fmt.Errorf("key %q: %w", key, err)
		}

		if i, seen := index[key]; seen {
			t.entries[i].Weight = weight
			continue
		}
		index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Pattern: key, Weight: weight})
	}

	if _, err := dec.Token(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func decodeWeight(raw json.RawMessage) (float64, error) {
	var weight number
	if err := json.Unmarshal(raw, &weight); err != nil {
		var obj struct {
			Weight *number `json:"weight"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, fmt.Errorf("weight must be a number or an object with a weight field")
		}
		if obj.Weight == nil {
			return 0, errors.New("missing weight field")
		}
		weight = *obj.Weight
	}
	if weight < 0 {
		return 0, fmt.Errorf("negative weight %g", float64(weight))
	}
	return float64(weight), nil
}

// number is a weight written either as a JSON number or as a numeric
// string such as "5" or " 2.5 ".
type number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("weight must be a number")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("weight %q is not a number", s)
	}
	*n = number(f)
	return nil
}
