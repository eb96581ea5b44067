// Package main implements the releaseme CLI tool.
//
// releaseme finds version numbers scattered across a project tree (Cargo.toml,
// pyproject.toml, __init__.py, package.json, Chart.yaml, version.go, ...) and
// rewrites all of them when the project's version changes. Where versions live
// is described by location patterns: path globs, regular expressions with a
// single capture group around the version, and exclude substrings. Locations
// come from the project's .release.yml and from built-in per-ecosystem defaults.
//
// Command Usage:
//
//	releaseme [global flags] <command> [flags]
//
// Commands:
//
//	display:     List every version occurrence with its file and byte span.
//	bump:        Bump every occurrence (--patch, --minor, --major, --set-version,
//	             --mode). --dry previews the change, --commit stages, commits and
//	             tags it with git.
//	sync:        Set every occurrence to the version recorded in .release.yml.
//	init:        Write a new .release.yml.
//	ecosystems:  List the built-in ecosystems.
//
// Global flags:
//
//	-r, --root:       Project root (defaults to ".").
//	-c, --config:     Configuration file relative to the root (defaults to ".release.yml").
//	-e, --ecosystem:  Limit built-in locations to an ecosystem. May be repeated.
//	-x, --exclude:    Skip paths containing a substring. May be repeated.
//	--repository:     owner/name used by the {repository}, {owner} and {name} placeholders.
//	--log-level:      debug, info, warn or error.
//	--debug:          Shorthand for --log-level debug.
//
// Configuration (.release.yml):
//
//	name: my-project
//	version: 1.2.3
//	repository: my-org/my-project
//	default: true
//	ecosystems: [Rust, Python]
//	excludes: [/vendor/]
//	gomod: false
//	locations:
//	  - name: Version header
//	    paths: ["src/**/*.h"]
//	    patterns: ['#define MY_VERSION "{version}"']
//
// Placeholders in patterns: {major}, {minor}, {patch}, {version}, {semver},
// and with a repository configured {repository}, {repo}, {owner}, {name}.
//
// Examples:
//
//	# Show every version occurrence
//	releaseme display
//
//	# Bump the minor version (e.g. 1.2.3 → 1.3.0)
//	releaseme bump --minor
//
//	# Preview a major bump without touching any file
//	releaseme bump --major --dry
//
//	# Set an explicit version, then commit and tag v2.0.0
//	releaseme bump --set-version 2.0.0 --commit
//
//	# Use the version of the latest git tag
//	releaseme bump --mode from-git
//
//	# Start a configuration limited to Rust and Python defaults
//	releaseme init --version 0.1.0 -e Rust -e Python
//
// Bumping is not transactional across files: if writing one file fails, files
// written before it stay modified. Use --dry first to review every change.
//
// For the library API see the "pkg" package.
package main
