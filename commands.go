package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	releaseme "github.com/bcomnes/releaseme/pkg"
)

func newDisplayCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Show every version occurrence found in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			entries, err := s.engine.Report(nil)
			if err != nil {
				return err
			}
			if s.config.Version != "" {
				outf(cmd, "Current Version: %s\n", s.config.Version)
			}
			renderReport(cmd.OutOrStdout(), s.root, entries, false)
			return nil
		},
	}
}

type bumpFlags struct {
	patch      bool
	minor      bool
	major      bool
	setVersion string
	mode       string
	dry        bool
	commit     bool
}

func newBumpCmd(opts *globalOptions) *cobra.Command {
	f := &bumpFlags{}

	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Bump every version occurrence",
		Long: `Bump every version occurrence found in the project.

When .release.yml carries a version, increments are computed from it and
every location is set to the result, so locations that drifted converge.

--mode accepts patch, minor, major, from-git (the latest git tag) or an
explicit version such as 1.2.3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			policy, bumpType, err := f.policy(s)
			if err != nil {
				return err
			}
			return runBump(cmd, s, policy, bumpType, f.dry, f.commit)
		},
	}

	cmd.Flags().BoolVar(&f.patch, "patch", true, "bump the patch version")
	cmd.Flags().BoolVar(&f.minor, "minor", false, "bump the minor version")
	cmd.Flags().BoolVar(&f.major, "major", false, "bump the major version")
	cmd.Flags().StringVarP(&f.setVersion, "set-version", "s", "", "set an explicit version")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "bump mode: patch, minor, major, from-git or a version")
	cmd.Flags().BoolVar(&f.dry, "dry", false, "show what would change without modifying any files")
	cmd.Flags().BoolVar(&f.commit, "commit", false, "stage, commit and tag the changes with git")
	cmd.MarkFlagsMutuallyExclusive("minor", "major", "set-version", "mode")

	return cmd
}

// policy picks the bump policy from the flags, in order of precedence:
// --set-version, --mode, then --major/--minor/--patch.
func (f *bumpFlags) policy(s *session) (releaseme.Policy, string, error) {
	switch {
	case f.setVersion != "":
		v, err := releaseme.ParseVersion(f.setVersion)
		if err != nil {
			return releaseme.Policy{}, "", err
		}
		return releaseme.SetTo(v), "explicit", nil

	case strings.EqualFold(f.mode, "from-git"):
		tag, err := releaseme.Git{Dir: s.root}.LatestTag()
		if err != nil {
			return releaseme.Policy{}, "", err
		}
		v, err := releaseme.ParseVersion(tag)
		if err != nil {
			return releaseme.Policy{}, "", fmt.Errorf("latest tag: %w", err)
		}
		return releaseme.SetTo(v), "from-git", nil
	}

	var policy releaseme.Policy
	switch {
	case f.mode != "":
		p, err := releaseme.ParsePolicy(f.mode)
		if err != nil {
			return releaseme.Policy{}, "", err
		}
		policy = p
	case f.major:
		policy = releaseme.MajorPolicy
	case f.minor:
		policy = releaseme.MinorPolicy
	default:
		policy = releaseme.PatchPolicy
	}

	bumpType := policy.Kind.String()
	anchored, err := policy.Anchor(s.config.Version)
	if err != nil {
		return releaseme.Policy{}, "", err
	}
	return anchored, bumpType, nil
}

func newSyncCmd(opts *globalOptions) *cobra.Command {
	var dry, commit bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Set every version occurrence to the configured version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if s.config.Version == "" {
				return fmt.Errorf("no version in %s; run init or bump --set-version", s.configPath)
			}
			v, err := releaseme.ParseVersion(s.config.Version)
			if err != nil {
				return err
			}
			return runBump(cmd, s, releaseme.SetTo(v), "sync", dry, commit)
		},
	}
	cmd.Flags().BoolVar(&dry, "dry", false, "show what would change without modifying any files")
	cmd.Flags().BoolVar(&commit, "commit", false, "stage, commit and tag the changes with git")
	return cmd
}

// runBump reports (dry) or applies policy and, when asked, commits and tags.
func runBump(cmd *cobra.Command, s *session, policy releaseme.Policy, bumpType string, dry, commit bool) error {
	var modSync *releaseme.ModuleSync
	if s.config.GoModule && policy.Kind == releaseme.BumpSet {
		if dir, err := releaseme.LocateGoModDir(s.root, s.root); err == nil {
			modSync = &releaseme.ModuleSync{Dir: dir}
		} else {
			s.log.Warn().Msg("gomod is enabled but no go.mod was found")
		}
	}

	if dry {
		entries, err := s.engine.Report(&policy)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), s.root, entries, true)
		if modSync != nil {
			files, err := modSync.Plan(policy.Target)
			if err != nil {
				return err
			}
			printFiles(cmd, "Go module files that would be updated:", s.root, files)
		}
		outf(cmd, "Dry run complete — no files were modified.\n")
		return nil
	}

	var git releaseme.Git
	if commit {
		if policy.Kind != releaseme.BumpSet {
			return errors.New("--commit needs a single target version: set version in the config or use --set-version")
		}
		if err := releaseme.CheckGit(); err != nil {
			return err
		}
		git = releaseme.Git{Dir: s.root}
		allowed, err := pendingFiles(s, policy, modSync)
		if err != nil {
			return err
		}
		if err := git.CheckClean(allowed); err != nil {
			return err
		}
	}

	s.log.Info().Str("policy", policy.String()).Msg("Bumping version")
	result, err := s.engine.Apply(policy)
	if err != nil {
		if len(result.Files) > 0 {
			printFiles(cmd, "Files already updated before the failure:", s.root, result.Files)
		}
		return err
	}

	updated := result.Files
	if modSync != nil {
		files, err := modSync.Apply(policy.Target)
		if err != nil {
			return err
		}
		updated = append(updated, files...)
	}

	if commit {
		if err := git.Commit(policy.Target.String(), updated); err != nil {
			return err
		}
	}

	outf(cmd, "Version bump successful!\n")
	if s.config.Version != "" {
		outf(cmd, "Old Version: %s\n", s.config.Version)
	}
	if policy.Kind == releaseme.BumpSet {
		outf(cmd, "New Version: %s\n", policy.Target)
	}
	outf(cmd, "Bump Type:   %s\n", bumpType)
	if result.Skipped > 0 {
		outf(cmd, "Skipped:     %d occurrence(s) that are not versions\n", result.Skipped)
	}
	printFiles(cmd, "Files updated:", s.root, updated)
	return nil
}

// pendingFiles lists the files a bump would write, for the dirty check.
func pendingFiles(s *session, policy releaseme.Policy, modSync *releaseme.ModuleSync) ([]string, error) {
	entries, err := s.engine.Report(&policy)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var files []string
	for _, e := range entries {
		if e.Err == nil && e.New != e.Old && !seen[e.Path] {
			seen[e.Path] = true
			files = append(files, e.Path)
		}
	}
	if modSync != nil {
		more, err := modSync.Plan(policy.Target)
		if err != nil {
			return nil, err
		}
		files = append(files, more...)
	}
	return files, nil
}

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		name     string
		version  string
		defaults bool
		inline   bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a new configuration file",
		Long: `Write a new configuration file.

Ecosystems selected with --ecosystem limit the built-in locations. With
--inline the selected built-in locations are copied into the file and the
built-in defaults are turned off, so the file is self-contained.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := opts.logger(cmd)
			path := releaseme.ConfigPath(opts.root, opts.config)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}

			catalog, err := releaseme.BuiltinCatalog()
			if err != nil {
				return err
			}
			if err := catalog.Validate(opts.ecosystems); err != nil {
				return err
			}

			config := &releaseme.Config{
				Name:       name,
				Version:    version,
				Repository: opts.repository,
				Excludes:   opts.excludes,
				Default:    &defaults,
			}
			if inline {
				off := false
				config.Default = &off
				for _, loc := range catalog.Select(opts.ecosystems) {
					loc.Ecosystems = nil
					config.Locations = append(config.Locations, loc)
				}
			} else {
				config.Ecosystems = opts.ecosystems
			}
			if err := config.Validate(); err != nil {
				return err
			}
			if err := config.Save(path); err != nil {
				return err
			}
			log.Info().Str("path", path).Int("locations", len(config.Locations)).Msg("Configuration saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "project name")
	cmd.Flags().StringVarP(&version, "version", "v", "", "current project version")
	cmd.Flags().BoolVarP(&defaults, "defaults", "d", true, "use the built-in default locations")
	cmd.Flags().BoolVar(&inline, "inline", false, "copy the selected built-in locations into the file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	return cmd
}

func newEcosystemsCmd(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ecosystems",
		Short: "List the built-in ecosystems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := releaseme.BuiltinCatalog()
			if err != nil {
				return err
			}
			renderEcosystems(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}
