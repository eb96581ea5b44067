// Package main implements a CLI tool that finds version numbers across a
// project tree and bumps them consistently.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bcomnes/releaseme/internal/logger"
	releaseme "github.com/bcomnes/releaseme/pkg"
)

type globalOptions struct {
	root       string
	config     string
	logLevel   string
	debug      bool
	repository string
	ecosystems []string
	excludes   []string
}

// session is the per-invocation state shared by the subcommands.
type session struct {
	log        zerolog.Logger
	root       string
	configPath string
	config     *releaseme.Config
	engine     *releaseme.Engine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "releaseme",
		Short: "Find and bump version numbers across a project",
		Long: `releaseme finds version numbers in manifests, source headers and release
files and rewrites them consistently when the project version changes.

Locations come from .release.yml and from built-in per-ecosystem defaults
(Cargo.toml, pyproject.toml, package.json, Chart.yaml, ...).

Examples:
  releaseme display
  releaseme bump --minor
  releaseme bump --set-version 2.0.0 --commit
  releaseme init --version 0.1.0 --ecosystem Rust --ecosystem Python`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.root, "root", "r", ".", "project root")
	flags.StringVarP(&opts.config, "config", "c", releaseme.DefaultConfigFile, "configuration file, relative to the project root")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.repository, "repository", "", "repository (owner/name) for {repository}, {owner} and {name} placeholders")
	flags.StringArrayVarP(&opts.ecosystems, "ecosystem", "e", nil, "limit built-in locations to an ecosystem (can be repeated)")
	flags.StringArrayVarP(&opts.excludes, "exclude", "x", nil, "skip paths containing this substring (can be repeated)")

	cmd.AddCommand(
		newDisplayCmd(opts),
		newBumpCmd(opts),
		newSyncCmd(opts),
		newInitCmd(opts),
		newEcosystemsCmd(opts),
	)
	return cmd
}

func (o *globalOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := o.logLevel
	if o.debug {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:  level,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
}

// overrides turns the command-line flags into a config layer.
func (o *globalOptions) overrides() *releaseme.Config {
	return &releaseme.Config{
		Repository: o.repository,
		Ecosystems: o.ecosystems,
		Excludes:   o.excludes,
	}
}

// open loads configuration, resolves locations and builds the engine.
func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	log := o.logger(cmd)

	configPath := releaseme.ConfigPath(o.root, o.config)
	config, err := releaseme.LoadConfigOrDefault(configPath, log)
	if err != nil {
		return nil, err
	}
	config.Merge(o.overrides())

	locations, err := releaseme.Resolve(config.ResolveOptions(log))
	if err != nil {
		return nil, err
	}
	engine, err := releaseme.NewEngine(o.root, locations, log)
	if err != nil {
		return nil, err
	}

	return &session{
		log:        log,
		root:       engine.Root(),
		configPath: configPath,
		config:     config,
		engine:     engine,
	}, nil
}
