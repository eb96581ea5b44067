// Package releaseme locates version numbers scattered across a project tree
// and rewrites them consistently when the project's version changes.
//
// It provides functionalities for:
//   - Parsing MAJOR.MINOR.PATCH versions and deriving new ones from a bump
//     policy (patch, minor, major, or an explicit version).
//   - Merging user-declared location patterns with an embedded, ecosystem
//     tagged catalog of built-in patterns, expanding placeholders such as
//     {version} and {repository} and compiling them to regular expressions.
//   - Expanding path globs (including **) under a project root and applying
//     exclude substrings.
//   - Collecting every capture of every pattern and rewriting all of them
//     in a single forward pass per file, so replacements of different
//     lengths never shift each other.
//   - Optionally keeping a Go module path's /vN suffix in step on major
//     bumps, and committing and tagging the result with git.
//
// Usage Example:
//
//	locations, err := releaseme.Resolve(releaseme.ResolveOptions{
//	    UseBuiltinDefaults: true,
//	    Ecosystems:         []string{"Rust", "Python"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := releaseme.NewEngine(".", locations, zerolog.Nop())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := engine.Apply(releaseme.MinorPolicy)
//	if err != nil {
//	    log.Fatalf("version bump failed: %v", err)
//	}
//	log.Printf("updated %d files", len(result.Files))
//
// Apply has no cross-file transaction: a write failure leaves the files
// written before it modified. Run Report first to preview every change.
package releaseme
