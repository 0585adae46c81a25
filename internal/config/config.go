package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"coursecal/internal/model"
)

// NOTE: This file provides the host document model and YAML load/save.
// The document mimics a documentation-site configuration: the calendar
// settings live in their own block, a global override namespace lives
// under extra.calendar_plugin and the computed context is attached back
// into extra.

// OverrideNamespace is the key under extra holding the global override layer.
const OverrideNamespace = "calendar_plugin"

// Document is the host configuration read from and written to YAML.
type Document struct {
	// Extra is the shared template context. It carries the override layer
	// on input and receives the computed context on output.
	Extra map[string]any `yaml:"extra"`

	// Calendar is the local (per-invocation) configuration layer.
	Calendar map[string]any `yaml:"calendar"`

	// Rest keeps every other top-level section so Save round-trips them.
	Rest map[string]any `yaml:",inline"`
}

// Normalize fills in missing maps so callers never write into a nil map.
func (d *Document) Normalize() {
	if d.Extra == nil {
		d.Extra = map[string]any{}
	}
	if d.Calendar == nil {
		d.Calendar = map[string]any{}
	}
}

// OverrideLayer returns extra.calendar_plugin, or nil when the namespace
// is absent or is not a mapping.
func (d *Document) OverrideLayer() Layer {
	if d == nil || d.Extra == nil {
		return nil
	}
	raw, ok := d.Extra[OverrideNamespace]
	if !ok {
		return nil
	}
	return asLayer(raw)
}

// LocalLayer returns the calendar block.
func (d *Document) LocalLayer() Layer {
	if d == nil {
		return nil
	}
	return Layer(d.Calendar)
}

// Attach stores ctx under extra[key].
func (d *Document) Attach(key string, ctx model.Context) {
	d.Normalize()
	d.Extra[key] = ctx
}

// Parse decodes a host document from YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

// Load loads the host document from the given YAML path. Unlike a
// settings file, the document is never created on first run: a missing
// file is an error.
func Load(path string) (*Document, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save writes the given document to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals doc to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, doc *Document) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if doc == nil {
		return errors.New("document is nil")
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".coursecal-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
