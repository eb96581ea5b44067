package releaseme_test

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"

	releaseme "github.com/bcomnes/releaseme/pkg"
)

// ExampleBump shows how each policy derives the next version.
func ExampleBump() {
	current, err := releaseme.ParseVersion("v1.2.3")
	if err != nil {
		fmt.Println("parse failed:", err)
		return
	}

	fmt.Println(releaseme.Bump(current, releaseme.PatchPolicy))
	fmt.Println(releaseme.Bump(current, releaseme.MinorPolicy))
	fmt.Println(releaseme.Bump(current, releaseme.MajorPolicy))
	fmt.Println(releaseme.Bump(current, releaseme.SetTo(releaseme.Version{Major: 0, Minor: 9, Patch: 0})))
	// Output:
	// 1.2.4
	// 1.3.0
	// 2.0.0
	// 0.9.0
}

// ExampleRewrite replaces every captured version in a single pass, so
// replacements that change length never disturb the other spans.
func ExampleRewrite() {
	content := []byte("a = \"1.2.3\"\nb = \"10.0.0\"\n")
	re := regexp.MustCompile(`"([0-9]+\.[0-9]+\.[0-9]+)"`)

	var edits []releaseme.Edit
	for _, c := range releaseme.Collect("demo.toml", content, []*regexp.Regexp{re}) {
		next, err := releaseme.Replacement(c.Text, releaseme.MajorPolicy)
		if err != nil {
			fmt.Println("replacement failed:", err)
			return
		}
		edits = append(edits, releaseme.Edit{Start: c.Start, End: c.End, New: next})
	}

	out, err := releaseme.Rewrite(content, edits)
	if err != nil {
		fmt.Println("rewrite failed:", err)
		return
	}
	fmt.Print(string(out))
	// Output:
	// a = "2.0.0"
	// b = "11.0.0"
}

// ExampleEngine_Apply bumps the minor version of a Rust crate and a Python
// package in a temporary project.
func ExampleEngine_Apply() {
	root, err := os.MkdirTemp("", "releaseme_example")
	if err != nil {
		fmt.Println("failed to create temporary directory:", err)
		return
	}
	defer os.RemoveAll(root)

	files := map[string]string{
		"Cargo.toml":      "[package]\nname = \"demo\"\nversion = \"1.2.3\"\n",
		"pkg/__init__.py": "__version__ = \"1.2.3\"\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Println("failed to create directory:", err)
			return
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Println("failed to write file:", err)
			return
		}
	}

	locations, err := releaseme.Resolve(releaseme.ResolveOptions{
		UseBuiltinDefaults: true,
		Ecosystems:         []string{"Rust", "Python"},
	})
	if err != nil {
		fmt.Println("resolve failed:", err)
		return
	}
	engine, err := releaseme.NewEngine(root, locations, zerolog.Nop())
	if err != nil {
		fmt.Println("engine failed:", err)
		return
	}

	result, err := engine.Apply(releaseme.MinorPolicy)
	if err != nil {
		fmt.Println("version bump failed:", err)
		return
	}
	fmt.Println("files updated:", len(result.Files))

	for _, rel := range []string{"Cargo.toml", "pkg/__init__.py"} {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			fmt.Println("failed to read file:", err)
			return
		}
		fmt.Print(string(data))
	}
	// Output:
	// files updated: 2
	// [package]
	// name = "demo"
	// version = "1.3.0"
	// __version__ = "1.3.0"
}
