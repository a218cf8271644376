package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gametimer/internal/core/model"
)

// TotalsFileName is the default name of the totals file.
const TotalsFileName = "games.json"

// TotalsFile stores activity totals as an indented JSON object of name to seconds.
type TotalsFile struct {
	path string
}

// NewTotalsFile returns a store for the JSON file at path.
func NewTotalsFile(path string) *TotalsFile {
	return &TotalsFile{path: path}
}

// Path returns the file location.
func (store *TotalsFile) Path() string {
	return store.path
}

// Load reads totals in file order. A missing file yields no activities.
// Anything other than an object of non-negative integers is ErrCorruptData.
func (store *TotalsFile) Load() ([]model.Activity, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read totals file: %w", model.ErrPersistenceFailure, err)
	}

	activities, err := decodeTotals(rawData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrCorruptData, store.path, err)
	}
	return activities, nil
}

// Save writes all totals, replacing the previous file atomically.
func (store *TotalsFile) Save(activities []model.Activity) error {
	serialized, err := encodeTotals(activities)
	if err != nil {
		return fmt.Errorf("%w: marshal totals: %w", model.ErrPersistenceFailure, err)
	}
	if err := writeFileAtomic(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("%w: write totals file: %w", model.ErrPersistenceFailure, err)
	}
	return nil
}

func decodeTotals(rawData []byte) ([]model.Activity, error) {
	decoder := json.NewDecoder(bytes.NewReader(rawData))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("parse totals json: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top level is not an object")
	}

	var activities []model.Activity
	positions := make(map[string]int)
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parse totals json: %w", err)
		}
		name, _ := token.(string)
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("empty activity name")
		}

		token, err = decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parse totals json: %w", err)
		}
		number, ok := token.(json.Number)
		if !ok {
			return nil, fmt.Errorf("value of %q is not an integer", name)
		}
		seconds, err := strconv.ParseInt(number.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value of %q is not an integer", name)
		}
		if seconds < 0 {
			return nil, fmt.Errorf("value of %q is negative", name)
		}

		if index, seen := positions[name]; seen {
			activities[index].TotalSeconds = seconds
			continue
		}
		positions[name] = len(activities)
		activities = append(activities, model.Activity{Name: name, TotalSeconds: seconds})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("parse totals json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after object")
	}
	return activities, nil
}

func encodeTotals(activities []model.Activity) ([]byte, error) {
	if len(activities) == 0 {
		return []byte("{}\n"), nil
	}

	var buffer bytes.Buffer
	buffer.WriteString("{\n")
	for index, activity := range activities {
		key, err := json.Marshal(activity.Name)
		if err != nil {
			return nil, err
		}
		buffer.WriteString("    ")
		buffer.Write(key)
		buffer.WriteString(": ")
		buffer.WriteString(strconv.FormatInt(activity.TotalSeconds, 10))
		if index < len(activities)-1 {
			buffer.WriteByte(',')
		}
		buffer.WriteByte('\n')
	}
	buffer.WriteString("}\n")
	return buffer.Bytes(), nil
}
