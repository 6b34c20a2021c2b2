// Package gitignore provides a small .gitignore matcher used to prune the source walk.
package gitignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// rule is one parsed .gitignore line.
type rule struct {
	raw      string
	segments []string
	negate   bool
	anchored bool // leading slash, or a slash inside the pattern
}

// GitIgnore represents a collection of gitignore rules, evaluated in order.
type GitIgnore struct {
	rules []rule
}

// LoadGitIgnore loads and parses a .gitignore file. A missing file yields an empty matcher.
func LoadGitIgnore(gitignorePath string) (*GitIgnore, error) {
	file, err := os.Open(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &GitIgnore{}, nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseGitIgnoreLines(lines), nil
}

// LoadGitIgnoreFromDir loads the .gitignore file at the root of dirPath.
func LoadGitIgnoreFromDir(dirPath string) (*GitIgnore, error) {
	return LoadGitIgnore(filepath.Join(dirPath, ".gitignore"))
}

// ParseGitIgnoreLines parses gitignore patterns, skipping blanks and comments.
func ParseGitIgnoreLines(lines []string) *GitIgnore {
	gi := &GitIgnore{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.rules = append(gi.rules, parseRule(line))
	}
	return gi
}

func parseRule(line string) rule {
	r := rule{raw: line}
	p := line
	if after, ok := strings.CutPrefix(p, "!"); ok {
		r.negate = true
		p = after
	}
	// trailing slash (directory only) is dropped, see matches
	p = strings.TrimSuffix(p, "/")
	if after, ok := strings.CutPrefix(p, "/"); ok {
		r.anchored = true
		p = after
	}
	if strings.Contains(p, "/") {
		r.anchored = true
	}
	r.segments = strings.Split(p, "/")
	return r
}

// GetPatterns returns the raw patterns in file order.
func (gi *GitIgnore) GetPatterns() []string {
	out := make([]string, 0, len(gi.rules))
	for _, r := range gi.rules {
		out = append(out, r.raw)
	}
	return out
}

// IsIgnored reports whether a slash-separated path relative to the .gitignore
// directory is ignored. The last matching rule wins, so negations re-include.
func (gi *GitIgnore) IsIgnored(relPath string) bool {
	if gi == nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	ignored := false
	for _, r := range gi.rules {
		if r.matches(parts) {
			ignored = !r.negate
		}
	}
	return ignored
}

// matches checks the rule against the path and each of its parent directories.
func (r rule) matches(parts []string) bool {
	if !r.anchored {
		// a bare name matches any component; callers cannot tell files from
		// directories here, so dir-only rules are treated the same way
		for _, part := range parts {
			if ok, _ := path.Match(r.segments[0], part); ok {
				return true
			}
		}
		return false
	}
	for end := 1; end <= len(parts); end++ {
		if matchSegments(r.segments, parts[:end]) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments; `**` spans any depth.
func matchSegments(pattern, parts []string) bool {
	if len(pattern) == 0 {
		return len(parts) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(parts); i++ {
			if matchSegments(pattern[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	if ok, _ := path.Match(pattern[0], parts[0]); !ok {
		return false
	}
	return matchSegments(pattern[1:], parts[1:])
}
