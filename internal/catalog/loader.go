package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Data file names inside the data directory.
const (
	ServicesFile = "services.json"
	AreasFile    = "areas.json"
)

// LoadStatus says how a data file load ended.
type LoadStatus string

const (
	StatusLoaded  LoadStatus = "loaded"
	StatusMissing LoadStatus = "missing"
	StatusInvalid LoadStatus = "invalid"
)

// LoadResult carries the decoded records together with a diagnostic, so
// callers can tell "empty on purpose" from "failed to read".
type LoadResult[T any] struct {
	Path    string
	Records []T
	Status  LoadStatus
	Err     error
}

// OK reports whether the file was read and decoded.
func (r LoadResult[T]) OK() bool { return r.Status == StatusLoaded }

// Load reads a JSON array of records from dataDir/name. A missing or invalid
// file never fails: the result is an empty slice with Status and Err set.
func Load[T any](dataDir, name string) LoadResult[T] {
	path := filepath.Join(dataDir, name)
	res := LoadResult[T]{Path: path, Records: []T{}}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = StatusMissing
		} else {
			res.Status = StatusInvalid
		}
		return res
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		res.Status = StatusInvalid
		res.Err = fmt.Errorf("parsing %s: %w", path, err)
		return res
	}
	if records != nil {
		res.Records = records
	}
	res.Status = StatusLoaded
	return res
}

// LoadServices reads dataDir/services.json.
func LoadServices(dataDir string) LoadResult[Service] {
	return Load[Service](dataDir, ServicesFile)
}

// LoadAreas reads dataDir/areas.json.
func LoadAreas(dataDir string) LoadResult[Area] {
	return Load[Area](dataDir, AreasFile)
}
