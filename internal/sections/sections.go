// Package sections partitions normalized Terms-of-Service text into named
// legal risk categories. Comparing these per-topic slices lets the detector
// notice a quiet edit inside a high-risk clause while ignoring loud rewrites
// of unrelated boilerplate.
package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/tos-monitor/internal/textutil"
)

// section associates a risk category name with the patterns that claim a
// paragraph for it.
type section struct {
	name     string
	patterns []*regexp.Regexp
}

// registry is the fixed, ordered set of hot sections. Order matters: the
// detector reports the first section whose content drifted, so higher-risk
// categories come first.
var registry = []section{
	{"liability", compile(`liab(le|ilit)`, `indemnif`, `hold harmless`, `warrant`, `damages`)},
	{"privacy", compile(`privacy`, `personal (data|information)`, `confidential`, `tracking`)},
	{"arbitration", compile(`arbitrat`, `class action`, `jury trial`, `binding resolution`)},
	{"dispute", compile(`dispute`, `claim`, `mediation`, `small claims`)},
	{"termination", compile(`terminat`, `suspend`, `cancel`, `discontinu`)},
	{"user_data", compile(`user (data|content)`, `your (data|content|information)`, `collect`, `third[- ]part`)},
	{"ai", compile(`artificial intelligence`, `machine learning`, `\bai\b`, `train(ing)? (our )?(models?|systems?)`, `automated`)},
	{"governing_law", compile(`governing law`, `jurisdiction`, `laws of`, `venue`)},
}

func compile(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

func (s *section) matches(paragraph string) bool {
	for _, p := range s.patterns {
		if p.MatchString(paragraph) {
			return true
		}
	}
	return false
}

// Names returns the registered section names in registry order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.name
	}
	return names
}

// Extract splits normalized text into paragraphs on blank-line boundaries and
// assigns each paragraph to every section whose patterns it matches. The
// result maps every registered section name to the newline-joined
// concatenation of its paragraphs; sections with no matches map to "".
func Extract(normalized string) map[string]string {
	paragraphs := textutil.SplitParagraphs(normalized)

	out := make(map[string]string, len(registry))
	for i := range registry {
		sec := &registry[i]
		var matched []string
		for _, paragraph := range paragraphs {
			if sec.matches(paragraph) {
				matched = append(matched, paragraph)
			}
		}
		out[sec.name] = strings.Join(matched, "\n")
	}
	return out
}
