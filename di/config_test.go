package di_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/autowire/di"
)

//
// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

// TestParseConfig_Properties verifies the Java properties syntax accepted by inj.properties.
func TestParseConfig_Properties(t *testing.T) {
	t.Parallel()

	src := `# comment
! also a comment

github.com/acme/app.Logger = github.com/acme/app.ConsoleLogger
github.com/acme/app.Clock: github.com/acme/app.FixedClock
github.com/acme/app.Store=github.com/acme/app.\
    MemoryStore
github.com/acme/app.Tmpl=${not.expanded}
`
	cfg, err := di.ParseConfig("inj.properties", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "inj.properties", cfg.Name())
	assert.Equal(t, 4, cfg.Len())

	cases := map[string]string{
		"github.com/acme/app.Logger": "github.com/acme/app.ConsoleLogger",
		"github.com/acme/app.Clock":  "github.com/acme/app.FixedClock",
		"github.com/acme/app.Store":  "github.com/acme/app.MemoryStore",
		"github.com/acme/app.Tmpl":   "${not.expanded}",
	}
	for k, want := range cases {
		got, ok := cfg.Lookup(k)
		require.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
}

// TestParseConfig_LastDuplicateWins verifies a repeated key keeps its last value.
func TestParseConfig_LastDuplicateWins(t *testing.T) {
	t.Parallel()

	cfg, err := di.ParseConfig("inj.properties", []byte("a=first\na=second\n"))
	require.NoError(t, err)

	got, ok := cfg.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

// TestParseConfig_ExactMatch verifies lookups do not match prefixes, suffixes or case variants.
func TestParseConfig_ExactMatch(t *testing.T) {
	t.Parallel()

	cfg, err := di.ParseConfig("inj.properties", []byte("app.Logger=app.ConsoleLogger\n"))
	require.NoError(t, err)

	for _, k := range []string{"Logger", "app.logger", "app.Logger2", "x.app.Logger", ""} {
		_, ok := cfg.Lookup(k)
		assert.False(t, ok, k)
	}
}

// TestParseConfig_Empty verifies an empty resource yields an empty config.
func TestParseConfig_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := di.ParseConfig("inj.properties", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Len())
	assert.Empty(t, cfg.Keys())
}

//
// -----------------------------------------------------------------------------
// YAML / TOML
// -----------------------------------------------------------------------------

// TestParseConfig_YAML verifies flat and nested YAML mappings.
func TestParseConfig_YAML(t *testing.T) {
	t.Parallel()

	src := `github.com/acme/app.Logger: github.com/acme/app.ConsoleLogger
github.com/acme/other:
  Clock: github.com/acme/other.FixedClock
`
	for _, name := range []string{"inj.yaml", "conf/INJ.YML"} {
		cfg, err := di.ParseConfig(name, []byte(src))
		require.NoError(t, err, name)

		assert.Equal(t, []string{
			"github.com/acme/app.Logger",
			"github.com/acme/other.Clock",
		}, cfg.Keys())

		got, ok := cfg.Lookup("github.com/acme/other.Clock")
		require.True(t, ok)
		assert.Equal(t, "github.com/acme/other.FixedClock", got)
	}
}

// TestParseConfig_TOML verifies quoted keys and tables are both accepted.
func TestParseConfig_TOML(t *testing.T) {
	t.Parallel()

	src := `"github.com/acme/app.Logger" = "github.com/acme/app.ConsoleLogger"

["github.com/acme/other"]
Clock = "github.com/acme/other.FixedClock"
`
	cfg, err := di.ParseConfig("inj.toml", []byte(src))
	require.NoError(t, err)

	got, ok := cfg.Lookup("github.com/acme/app.Logger")
	require.True(t, ok)
	assert.Equal(t, "github.com/acme/app.ConsoleLogger", got)

	got, ok = cfg.Lookup("github.com/acme/other.Clock")
	require.True(t, ok)
	assert.Equal(t, "github.com/acme/other.FixedClock", got)
}

//
// -----------------------------------------------------------------------------
// Failures
// -----------------------------------------------------------------------------

// TestParseConfig_Malformed verifies every malformed source reports ConfigLoadError.
func TestParseConfig_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		resource string
		src      string
	}{
		{"bad unicode escape", "inj.properties", "a=\\uZZZZ\n"},
		{"empty implementation", "inj.properties", "app.Logger=\n"},
		{"blank implementation", "inj.properties", "app.Logger=   \n"},
		{"yaml syntax", "inj.yaml", "a: [\n"},
		{"yaml sequence", "inj.yaml", "- a\n- b\n"},
		{"yaml non-string", "inj.yaml", "a: 1\n"},
		{"yaml null", "inj.yaml", "a:\n"},
		{"toml syntax", "inj.toml", "a = \n"},
		{"toml non-string", "inj.toml", "a = 1\n"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := di.ParseConfig(tc.resource, []byte(tc.src))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cle *di.ConfigLoadError
			require.True(t, errors.As(err, &cle))
			assert.Equal(t, tc.resource, cle.Resource)
			assert.ErrorIs(t, err, di.ErrConfigLoad)
			assert.NotNil(t, cle.Unwrap())
		})
	}
}

// TestLoadConfig_FromFS verifies LoadConfig reads the named resource.
func TestLoadConfig_FromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"inj.properties": {Data: []byte("a=b\n")},
	}

	cfg, err := di.LoadConfig(fsys, "inj.properties")
	require.NoError(t, err)
	got, ok := cfg.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "b", got)
}

// TestLoadConfig_Missing verifies missing resources and nil filesystems fail with ConfigLoadError.
func TestLoadConfig_Missing(t *testing.T) {
	t.Parallel()

	_, err := di.LoadConfig(fstest.MapFS{}, "inj.properties")
	assert.ErrorIs(t, err, di.ErrConfigLoad)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), `di: cannot load config "inj.properties"`)

	_, err = di.LoadConfig(nil, "inj.properties")
	assert.ErrorIs(t, err, di.ErrConfigLoad)
}

//
// -----------------------------------------------------------------------------
// NewConfig
// -----------------------------------------------------------------------------

// TestNewConfig_Copies verifies later changes to the source map do not leak into the config.
func TestNewConfig_Copies(t *testing.T) {
	t.Parallel()

	src := map[string]string{"b": "2", "a": "1"}
	cfg := di.NewConfig(src)
	src["c"] = "3"
	delete(src, "a")

	assert.Equal(t, []string{"a", "b"}, cfg.Keys())
	assert.Equal(t, "", cfg.Name())
}

// TestConfig_NilLookup verifies a nil *Config resolves nothing instead of panicking.
func TestConfig_NilLookup(t *testing.T) {
	t.Parallel()

	var cfg *di.Config
	_, ok := cfg.Lookup("a")
	assert.False(t, ok)
}
