package di

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DefaultResource is the configuration resource loaded by New.
const DefaultResource = "inj.properties"

// ConfigStore resolves a capability id to the id of its configured
// implementation.
//
// Implementations must be read-only: the injector may call Lookup from
// several goroutines at once.
type ConfigStore interface {
	Lookup(capability string) (implementation string, ok bool)
}

// Config is the immutable ConfigStore built from a configuration resource.
type Config struct {
	name    string
	entries map[string]string
}

var _ ConfigStore = (*Config)(nil)

// NewConfig builds a Config from an already parsed mapping. The map is copied.
func NewConfig(entries map[string]string) *Config {
	cp := make(map[string]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &Config{entries: cp}
}

// LoadConfig reads the named resource from fsys and parses it.
//
// The format follows the extension: ".yaml"/".yml" and ".toml" are decoded as
// such, everything else is treated as a Java-style properties file.
func LoadConfig(fsys fs.FS, name string) (*Config, error) {
	if fsys == nil {
		return nil, &ConfigLoadError{Resource: name, Err: errors.New("nil filesystem")}
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ConfigLoadError{Resource: name, Err: err}
	}
	return ParseConfig(name, data)
}

// ParseConfig parses data as the resource called name.
func ParseConfig(name string, data []byte) (*Config, error) {
	var (
		entries map[string]string
		err     error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		entries, err = parseYAML(data)
	case ".toml":
		entries, err = parseTOML(data)
	default:
		entries, err = parseProperties(data)
	}
	if err == nil {
		err = validateEntries(entries)
	}
	if err != nil {
		return nil, &ConfigLoadError{Resource: name, Err: err}
	}
	return &Config{name: name, entries: entries}, nil
}

// Lookup implements ConfigStore.
func (c *Config) Lookup(capability string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.entries[capability]
	return v, ok
}

// Name returns the resource the config was loaded from ("" for NewConfig).
func (c *Config) Name() string { return c.name }

// Len returns the number of mappings.
func (c *Config) Len() int { return len(c.entries) }

// Keys returns the configured capability ids in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseProperties(data []byte) (map[string]string, error) {
	// ${...} has no meaning in type ids; keep values verbatim.
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

func parseYAML(data []byte) (map[string]string, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	if err := flatten("", raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseTOML(data []byte) (map[string]string, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if err := flatten("", tree.ToMap(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten joins nested table keys with "." so that
//
//	[github.com/acme/app]
//	Logger = "..."
//
// maps the id "github.com/acme/app.Logger".
func flatten(prefix string, in map[string]any, out map[string]string) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return errors.New("value of " + key + " is not a string")
		}
	}
	return nil
}

func validateEntries(entries map[string]string) error {
	for k, v := range entries {
		if strings.TrimSpace(k) == "" {
			return errors.New("empty capability id")
		}
		if strings.TrimSpace(v) == "" {
			return errors.New("empty implementation id for " + k)
		}
	}
	return nil
}
