package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// engine is an Aho-Corasick prefilter over every vendor key and keyword
// phrase. A single pass over the combined text answers "could any table entry
// possibly match?" in O(text length), independent of table size. It is
// rebuilt whenever an override changes the vendor table.
type engine struct {
	matcher *ahocorasick.Matcher
}

func newEngine(vendors []vendorEntry, keywords []keywordGroup) *engine {
	patterns := make([][]byte, 0, len(vendors)+len(keywords)*4)
	for _, v := range vendors {
		patterns = append(patterns, []byte(v.key))
	}
	for _, group := range keywords {
		for _, kw := range group.keywords {
			patterns = append(patterns, []byte(kw))
		}
	}
	if len(patterns) == 0 {
		return &engine{}
	}
	return &engine{matcher: ahocorasick.NewMatcher(patterns)}
}

// hasMatch reports whether any table pattern occurs in the lowercased text.
// A false result guarantees the linear vendor and keyword scans would find
// nothing for a merchant-less row.
func (e *engine) hasMatch(text string) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	return len(e.matcher.Match([]byte(strings.ToLower(text)))) > 0
}
