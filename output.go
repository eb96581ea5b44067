package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	releaseme "github.com/bcomnes/releaseme/pkg"
)

func outf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

// renderReport prints one row per capture. withNew adds the column holding
// the version each capture would become.
func renderReport(w io.Writer, root string, entries []releaseme.ReportEntry, withNew bool) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No versions found")
		return
	}

	r := lipgloss.NewRenderer(w)
	oldStyle := r.NewStyle().Foreground(lipgloss.Color("1"))
	newStyle := r.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle := r.NewStyle().Foreground(lipgloss.Color("3"))

	header := []string{"Old", "Path", "Span", "Location"}
	if withNew {
		header = []string{"Old", "New", "Path", "Span", "Location"}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	files := make(map[string]bool)
	for _, e := range entries {
		files[e.Path] = true

		span := fmt.Sprintf("%d-%d", e.Start, e.End)
		row := []string{oldStyle.Render(e.Old)}
		if withNew {
			switch {
			case e.Err != nil:
				row = append(row, errStyle.Render("invalid"))
			case e.New == e.Old:
				row = append(row, e.New)
			default:
				row = append(row, newStyle.Render(e.New))
			}
		}
		row = append(row, relPath(root, e.Path), span, e.Location)
		table.Append(row)
	}

	footer := make([]string, len(header))
	footer[0] = fmt.Sprintf("%d found", len(entries))
	footer[len(footer)-3] = fmt.Sprintf("%d files", len(files))
	table.SetFooter(footer)

	table.Render()
}

func renderEcosystems(w io.Writer, catalog *releaseme.Catalog) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ecosystem", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for _, name := range catalog.Ecosystems() {
		table.Append([]string{name, catalog.Describe(name)})
	}
	table.Render()
}

func printFiles(cmd *cobra.Command, title, root string, files []string) {
	if len(files) == 0 {
		return
	}
	outf(cmd, "%s\n", title)
	for _, f := range files {
		outf(cmd, "  %s\n", relPath(root, f))
	}
}
