package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
)

// DefaultCSVPath is used when the csv backend is configured without a path.
const DefaultCSVPath = "data.csv"

// CSVStore keeps the part list in a comma-separated text file with a header
// row. Saves go to a temporary file that is renamed over the target, so a
// crash leaves either the old or the new list on disk.
type CSVStore struct {
	path string
}

// NewCSVStore returns a store backed by the file at path. The file is
// created on the first save.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultCSVPath
	}
	return &CSVStore{path: path}
}

// Load reads every record. A missing file is an empty list. Blank lines
// are ignored and undecodable lines are returned in Skipped.
func (s *CSVStore) Load(ctx context.Context) (partstore.LoadResult, error) {
	var res partstore.LoadResult
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, err
	}
	first := true
	for i, raw := range strings.Split(string(data), "\n") {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(raw))
		r.FieldsPerRecord = -1
		fields, err := r.Read()
		if err != nil {
			res.Skipped = append(res.Skipped, partstore.SkippedLine{Line: i + 1, Reason: err.Error()})
			continue
		}
		if first {
			first = false
			if partstore.IsHeader(fields) {
				continue
			}
		}
		p, err := partstore.DecodeRow(fields)
		if err != nil {
			res.Skipped = append(res.Skipped, partstore.SkippedLine{Line: i + 1, Reason: err.Error()})
			continue
		}
		res.Parts = append(res.Parts, p)
	}
	return res, nil
}

// Save replaces the file content with parts.
func (s *CSVStore) Save(ctx context.Context, parts []model.Part) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(partstore.Header); err != nil {
		return err
	}
	for _, p := range parts {
		if err = w.Write(partstore.EncodeRow(p)); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVStore) Close() error { return nil }

type csvConf struct {
	Path string `json:"path"`
}

func init() {
	_ = partstore.Register("csv", func(conf map[string]any) (partstore.Store, error) {
		var c csvConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewCSVStore(c.Path), nil
	})
}
