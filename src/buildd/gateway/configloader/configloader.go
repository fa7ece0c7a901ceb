// Package configloader loads a project's configuration as seen from a working directory.
package configloader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/clock"
	"github.com/uber/buildd/src/buildd/internal/errors"
	"github.com/uber/buildd/src/buildd/internal/fs"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file. The nearest one above the working directory
// marks the project root.
const FileName = ".buildconfig"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Loader resolves configuration snapshots.
type Loader interface {
	// Load reads the project configuration for workingDir and applies overrides in order.
	// Every malformed override is reported, not only the first.
	Load(ctx context.Context, workingDir string, overrides []*api.ConfigOverride) (*entity.ConfigSnapshot, error)
}

// Params define values to be used by the loader.
type Params struct {
	fx.In

	FS    fs.BuilddFS
	Clock clock.Clock
}

type loader struct {
	fs    fs.BuilddFS
	clock clock.Clock
}

// New creates a Loader.
func New(p Params) Loader {
	return &loader{
		fs:    p.FS,
		clock: p.Clock,
	}
}

func (l *loader) Load(ctx context.Context, workingDir string, overrides []*api.ConfigOverride) (*entity.ConfigSnapshot, error) {
	root, source, err := l.findRoot(workingDir)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]map[string]string)
	if source != "" {
		if err := l.mergeFile(sections, source); err != nil {
			return nil, err
		}
	}

	var errs error
	for i, o := range overrides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.apply(sections, workingDir, o); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("config override %d: %w", i, err))
		}
	}
	if errs != nil {
		return nil, errs
	}

	return entity.NewConfigSnapshot(root, source, l.clock.Now(), sections), nil
}

// findRoot walks up from dir to the nearest directory holding FileName.
func (l *loader) findRoot(dir string) (root, source string, err error) {
	dir = filepath.Clean(dir)
	for current := dir; ; {
		candidate := filepath.Join(current, FileName)
		exists, err := l.fs.FileExists(candidate)
		if err != nil {
			return "", "", &errors.ResourceError{Op: "looking up config", Path: candidate, Err: err}
		}
		if exists {
			return current, candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, "", nil
		}
		current = parent
	}
}

func (l *loader) apply(sections map[string]map[string]string, workingDir string, o *api.ConfigOverride) error {
	if o == nil {
		return errors.New("override is empty")
	}

	switch o.Kind {
	case api.ConfigOverrideValue:
		section, key, value, err := ParseValueOverride(o.Payload)
		if err != nil {
			return err
		}
		set(sections, section, key, value)
		return nil
	case api.ConfigOverrideFile:
		if o.Payload == "" {
			return errors.New("config file path is empty")
		}
		path := o.Payload
		if !filepath.IsAbs(path) {
			path = filepath.Join(workingDir, path)
		}
		return l.mergeFile(sections, path)
	}
	return fmt.Errorf("unknown override kind %s", o.Kind)
}

func (l *loader) mergeFile(sections map[string]map[string]string, path string) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return &errors.ResourceError{Op: "reading config", Path: path, Err: err}
	}
	parsed, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for section, kv := range parsed {
		for k, v := range kv {
			set(sections, section, k, v)
		}
	}
	return nil
}

// Parse decodes a configuration document: a mapping of section names to mappings of scalar values.
func Parse(data []byte) (map[string]map[string]string, error) {
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	out := make(map[string]map[string]string, len(doc))
	var errs error
	for section, kv := range doc {
		for k, v := range kv {
			switch v := v.(type) {
			case nil:
				set(out, section, k, "")
			case string, bool, int, int64, uint64, float64:
				set(out, section, k, fmt.Sprint(v))
			default:
				errs = multierr.Append(errs, fmt.Errorf("%s.%s: value must be a scalar", section, k))
			}
		}
		if _, ok := out[section]; !ok && len(kv) == 0 {
			out[section] = map[string]string{}
		}
	}
	return out, errs
}

// ParseValueOverride splits a "section.key=value" override.
func ParseValueOverride(payload string) (section, key, value string, err error) {
	name, value, ok := strings.Cut(payload, "=")
	if !ok {
		return "", "", "", fmt.Errorf("override %q has no '='", payload)
	}
	section, key, ok = strings.Cut(strings.TrimSpace(name), ".")
	if !ok || section == "" || key == "" {
		return "", "", "", fmt.Errorf("override %q must name section.key", payload)
	}
	return section, key, strings.TrimSpace(value), nil
}

func set(sections map[string]map[string]string, section, key, value string) {
	kv, ok := sections[section]
	if !ok {
		kv = make(map[string]string)
		sections[section] = kv
	}
	kv[key] = value
}
