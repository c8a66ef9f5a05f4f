package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kdduha/uml-generator/internal/mermaid"
)

var (
	classNameRe = regexp.MustCompile(`(?i)(\w+)\s+class`)
	attrPairRe  = regexp.MustCompile(`(\w+)\s*:\s*(\w+)`)
	attrListRe  = regexp.MustCompile(`(?i)\bwith\s+([\w\s,]+?)\s+attributes?\b`)
	methodRe    = regexp.MustCompile(`(\w+)\s*\(\s*\)(?:\s*:\s*(\w+))?`)
	inheritRe   = regexp.MustCompile(`(?i)(\w+(?:\s*(?:,|\band\b)\s*\w+)*)\s+(?:classes?\s+)?(?:inherits?\s+from|extends(?:\s+from)?)\s+(\w+)`)
	listSepRe   = regexp.MustCompile(`(?i)\s*(?:,|\band\b)\s*`)
)

const (
	memberIndent    = "        "
	statementIndent = "    "
)

// OfflineProvider turns simple English descriptions into class diagrams with
// pattern matching. It needs no network and never fails.
type OfflineProvider struct {
	logger *log.Logger
}

func NewOfflineProvider(logger *log.Logger) *OfflineProvider {
	return &OfflineProvider{logger: logger}
}

func (p *OfflineProvider) Generate(_ context.Context, description string, _ Options) (script string, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("offline generation error: %v", r)
			script, err = mermaid.Placeholder, nil
		}
	}()
	return p.translate(description), nil
}

func (p *OfflineProvider) translate(description string) string {
	lower := strings.ToLower(description)

	var classes []string
	if strings.Contains(lower, "class") {
		if m := classNameRe.FindStringSubmatch(description); m != nil {
			classes = append(classes, statementIndent+"class "+m[1]+" {")
			if strings.Contains(lower, "attributes") {
				for _, attr := range extractAttributes(description) {
					classes = append(classes, memberIndent+"+"+attr)
				}
			}
			if strings.Contains(lower, "methods") {
				for _, method := range methodRe.FindAllStringSubmatch(description, -1) {
					ret := method[2]
					if ret == "" {
						ret = "void"
					}
					classes = append(classes, fmt.Sprintf("%s+%s() : %s", memberIndent, method[1], ret))
				}
			}
			classes = append(classes, statementIndent+"}")
		}
	}

	var relationships []string
	if strings.Contains(lower, "inherit") || strings.Contains(lower, "extends") {
		for _, m := range inheritRe.FindAllStringSubmatch(description, -1) {
			for _, child := range listSepRe.Split(m[1], -1) {
				if child == "" || strings.EqualFold(child, m[2]) {
					continue
				}
				relationships = append(relationships, fmt.Sprintf("%s%s <|-- %s", statementIndent, m[2], child))
			}
		}
	}

	if len(classes) == 0 {
		p.logger.Debug("no class recognised", "description", description)
		return mermaid.Placeholder
	}

	lines := append([]string{mermaid.Directive}, classes...)
	lines = append(lines, relationships...)
	return strings.Join(lines, "\n")
}

// extractAttributes collects typed "name : Type" pairs and the untyped list
// in "with a, b and c attributes", which default to String.
func extractAttributes(description string) []string {
	var (
		attrs []string
		seen  = map[string]bool{}
	)
	add := func(name, typ string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		attrs = append(attrs, name+" : "+typ)
	}

	for _, m := range attrPairRe.FindAllStringSubmatch(description, -1) {
		add(m[1], m[2])
	}
	if m := attrListRe.FindStringSubmatch(description); m != nil {
		for _, name := range listSepRe.Split(m[1], -1) {
			if strings.ContainsAny(name, " \t\n") {
				continue
			}
			add(name, "String")
		}
	}
	return attrs
}
