package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sghaida/autowire/di"
)

type flagSet struct {
	Dir     string
	Require []string
	Verbose bool
}

func newRootCmd() *cobra.Command {
	var flags flagSet

	cmd := &cobra.Command{
		Use:           "injcheck [resource]",
		Short:         "Load an injection config and print its mappings",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resource := di.DefaultResource
			if len(args) == 1 {
				resource = args[0]
			}
			return check(cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), flags.Verbose), flags, resource)
		},
	}

	cmd.Flags().StringVarP(&flags.Dir, "dir", "d", ".", "Base directory for the resource")
	cmd.Flags().StringArrayVarP(&flags.Require, "require", "r", nil, "Capability id that must have an entry (repeatable)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
}

func check(out io.Writer, log zerolog.Logger, flags flagSet, resource string) error {
	dir, resource := resolve(flags.Dir, resource)

	log.Debug().Str("dir", dir).Str("resource", resource).Msg("loading config")
	cfg, err := di.LoadConfig(os.DirFS(dir), resource)
	if err != nil {
		return err
	}
	log.Debug().Int("entries", cfg.Len()).Msg("config loaded")

	for _, k := range cfg.Keys() {
		v, _ := cfg.Lookup(k)
		fmt.Fprintf(out, "%s=%s\n", k, v)
	}

	var missing []string
	for _, id := range flags.Require {
		if _, ok := cfg.Lookup(id); !ok {
			log.Debug().Str("capability", id).Msg("required capability missing")
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no entry for required capabilities: %s", strings.Join(missing, ", "))
	}
	return nil
}

// resolve splits resource into a directory and a name os.DirFS accepts.
// Absolute names and names climbing out of dir with ".." are rebased onto
// their own parent directory.
func resolve(dir, resource string) (string, string) {
	name := filepath.ToSlash(filepath.Clean(resource))
	if !filepath.IsAbs(resource) && fs.ValidPath(name) {
		return dir, name
	}
	full := resource
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, resource)
	}
	base, file := filepath.Split(filepath.Clean(full))
	return base, file
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
