package releaseme

import (
	"os"
	"regexp"
)

// Capture is one version occurrence: the byte span of the capture group
// within the file's content at scan time.
type Capture struct {
	Path     string
	Start    int
	End      int
	Text     string
	Location string
}

// Collect runs every regex against content and returns all non-overlapping
// matches of each, pattern by pattern, in discovery order. Matches whose
// capture group did not participate are ignored.
func Collect(path string, content []byte, regexes []*regexp.Regexp) []Capture {
	var captures []Capture
	for _, re := range regexes {
		for _, m := range re.FindAllSubmatchIndex(content, -1) {
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			captures = append(captures, Capture{
				Path:  path,
				Start: m[2],
				End:   m[3],
				Text:  string(content[m[2]:m[3]]),
			})
		}
	}
	return captures
}

// CollectFile reads path and collects the location's captures in it.
func CollectFile(path string, loc LocationPattern) ([]Capture, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &IOError{Op: "read", Path: path, Err: err}
	}
	captures := Collect(path, content, loc.Regexes)
	for i := range captures {
		captures[i].Location = loc.String()
	}
	return captures, content, nil
}
