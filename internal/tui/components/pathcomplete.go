package components

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompleter completes file system paths on repeated Tab presses.
// Directories always match so the user can descend into them; files match
// only when their extension is one of the accepted ones.
//
//	completer := NewPathCompleter(".xlsx", ".xlsm")
//	field.SetValue(completer.Next(field.Value())) // on Tab
//	completer.Reset()                             // on any other key
type PathCompleter struct {
	extensions []string
	matches    []string
	index      int
	parent     string
}

// NewPathCompleter accepts files with the given extensions (case-insensitive).
// No extensions means every file matches.
func NewPathCompleter(extensions ...string) *PathCompleter {
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(ext)
	}
	return &PathCompleter{extensions: lowered}
}

// Next returns the completion for input. The first press completes the
// longest common prefix of the candidates; later presses with the same
// parent directory cycle through them.
func (c *PathCompleter) Next(input string) string {
	parent, prefix := splitPath(input)

	if c.matches != nil && parent == c.parent {
		if len(c.matches) == 0 {
			return input
		}
		c.index = (c.index + 1) % len(c.matches)
		return c.join(parent, c.matches[c.index])
	}

	c.matches = c.candidates(parent, prefix)
	c.index = 0
	c.parent = parent

	switch len(c.matches) {
	case 0:
		return input
	case 1:
		return c.join(parent, c.matches[0])
	}

	if common := filepath.Join(parent, commonPrefix(c.matches)); len(common) > len(input) {
		c.index = -1
		return common
	}
	return c.join(parent, c.matches[0])
}

// Reset forgets the candidates. Call it on every key other than Tab.
func (c *PathCompleter) Reset() {
	c.matches = nil
	c.index = 0
	c.parent = ""
}

func (c *PathCompleter) candidates(parent, prefix string) []string {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return []string{}
	}

	lowPrefix := strings.ToLower(prefix)
	matches := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(strings.ToLower(name), lowPrefix) {
			continue
		}
		if entry.IsDir() || c.accepts(name) {
			matches = append(matches, name)
		}
	}

	sort.Strings(matches)
	return matches
}

func (c *PathCompleter) accepts(name string) bool {
	if len(c.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range c.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (c *PathCompleter) join(parent, name string) string {
	result := filepath.Join(parent, name)
	if info, err := os.Stat(result); err == nil && info.IsDir() {
		result += string(filepath.Separator)
	}
	return result
}

// splitPath splits input into the directory to list and the name prefix.
//
//	"data/or"  → ("data", "or")
//	"data/"    → ("data", "")
//	"or"       → (".", "or")
//	""         → (".", "")
func splitPath(input string) (parent, prefix string) {
	if input == "" || input == "." {
		return ".", ""
	}
	if strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(filepath.Separator)) {
		trimmed := strings.TrimRight(input, `/\`)
		if trimmed == "" {
			return input[:1], ""
		}
		return trimmed, ""
	}
	return filepath.Dir(input), filepath.Base(input)
}

// commonPrefix returns the longest case-insensitive common prefix, in the
// casing of the first name.
func commonPrefix(names []string) string {
	first := names[0]
	n := len(first)
	for _, name := range names[1:] {
		i := 0
		for i < n && i < len(name) && strings.EqualFold(first[i:i+1], name[i:i+1]) {
			i++
		}
		n = i
	}
	return first[:n]
}
