package entity

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// ConfigSnapshot is an immutable, fully resolved project configuration. Snapshots are shared
// between invocations and never modified after construction.
type ConfigSnapshot struct {
	// ProjectRoot is the directory holding the project config file.
	ProjectRoot string
	// SourcePath is the file the snapshot was loaded from, or "" when none exists.
	SourcePath string
	LoadedAt   time.Time
	Digest     string

	sections map[string]map[string]string
	text     string
}

// NewConfigSnapshot copies sections and computes the snapshot's canonical text and digest.
func NewConfigSnapshot(root, source string, loadedAt time.Time, sections map[string]map[string]string) *ConfigSnapshot {
	copied := make(map[string]map[string]string, len(sections))
	for name, kv := range sections {
		section := make(map[string]string, len(kv))
		for k, v := range kv {
			section[k] = v
		}
		copied[name] = section
	}

	text := render(copied)
	sum := blake3.Sum256([]byte(text))
	return &ConfigSnapshot{
		ProjectRoot: root,
		SourcePath:  source,
		LoadedAt:    loadedAt,
		Digest:      hex.EncodeToString(sum[:]),
		sections:    copied,
		text:        text,
	}
}

// Get returns the value of section.key.
func (c *ConfigSnapshot) Get(section, key string) (string, bool) {
	v, ok := c.sections[section][key]
	return v, ok
}

// Sections returns a copy of the resolved values.
func (c *ConfigSnapshot) Sections() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.sections))
	for name, kv := range c.sections {
		section := make(map[string]string, len(kv))
		for k, v := range kv {
			section[k] = v
		}
		out[name] = section
	}
	return out
}

// Text is the canonical rendering the digest is computed over: sorted "[section]" headers
// followed by sorted "key = value" lines.
func (c *ConfigSnapshot) Text() string {
	return c.text
}

func render(sections map[string]map[string]string) string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "[%s]\n", name)
		keys := make([]string, 0, len(sections[name]))
		for k := range sections[name] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s = %s\n", k, sections[name][k])
		}
	}
	return b.String()
}
