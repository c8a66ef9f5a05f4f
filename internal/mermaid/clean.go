package mermaid

import (
	"regexp"
	"strings"
)

var (
	semicolonRe   = regexp.MustCompile(`[ \t]*;[ \t]*`)
	adjacentBlock = regexp.MustCompile(`\s*}\s*{`)
	fencedRe      = regexp.MustCompile("(?s)```mermaid\\s*\\n(.*?)```")
)

const indentUnit = "    "

// Clean repairs common problems in generated scripts and returns either a
// valid script or Placeholder. Clean(Clean(s)) == Clean(s) for any s.
func Clean(script string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = Placeholder
		}
	}()

	lines := nonBlankLines(script)
	if len(lines) == 0 || !strings.HasPrefix(strings.ToLower(lines[0]), strings.ToLower(Directive)) {
		lines = append([]string{Directive}, lines...)
	}

	text := semicolonRe.ReplaceAllString(strings.Join(lines, "\n"), "")
	text = adjacentBlock.ReplaceAllString(text, "}\n{")
	lines = nonBlankLines(text)

	cleaned = indent(lines)
	if !Validate(cleaned).OK {
		return Placeholder
	}
	return cleaned
}

// indent lays lines out by class-block depth: the directive at column zero,
// statements one level in, members one level deeper per open block.
// Relationship lines are skipped when counting braces since cardinality
// markers such as "||--o{" contain them.
func indent(lines []string) string {
	var b strings.Builder
	depth := 0
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			level := depth + 1 - leadingClosers(line)
			b.WriteString(strings.Repeat(indentUnit, max(level, 1)))
		}
		b.WriteString(line)
		if !isRelationship(line) {
			depth = max(depth+strings.Count(line, "{")-strings.Count(line, "}"), 0)
		}
	}
	return b.String()
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func leadingClosers(line string) int {
	return len(line) - len(strings.TrimLeft(line, "}"))
}

func isRelationship(line string) bool {
	return strings.Contains(line, "--") || strings.Contains(line, "..")
}

// ExtractScript pulls the body of the first ```mermaid fenced block out of
// model output, falling back to the trimmed text itself.
func ExtractScript(text string) string {
	if m := fencedRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
