// Package header extracts the optional [header]...[header] block that may
// open a configurator document. The block holds a JSON object of named rules
// that tokens reference with the #name syntax.
package header

import (
	"regexp"
	"strings"

	"github.com/getmockd/configurator/pkg/rule"
)

// Tag opens and closes a header block.
const Tag = "[header]"

var headerRegex = regexp.MustCompile(`^\s*` + regexp.QuoteMeta(Tag) + `([\s\S]*?)` + regexp.QuoteMeta(Tag))

// Header is the parsed header of a single document.
type Header struct {
	// Rules holds the named rules. It is never nil.
	Rules rule.Header

	// Raw is the matched header block, tags and leading whitespace included.
	// It is empty when the document has no header.
	Raw string
}

// Empty returns a header with no rules and nothing to strip.
func Empty() *Header {
	return &Header{Rules: rule.Header{}}
}

// Body returns input with the header block removed.
func (h *Header) Body(input string) string {
	return input[len(h.Raw):]
}

// Extract locates and parses the header block at the start of input.
//
// A missing block yields an empty header with an empty Raw. A block with
// empty or whitespace-only content still sets Raw so it is stripped. Other
// content must be a JSON object of rules: malformed JSON returns a
// *rule.ParseError and schema violations a *rule.ValidationError.
func Extract(input string, v *rule.Validator) (*Header, error) {
	match := headerRegex.FindStringSubmatch(input)
	if match == nil {
		return Empty(), nil
	}

	h := Empty()
	h.Raw = match[0]

	content := match[1]
	if strings.TrimSpace(content) == "" {
		return h, nil
	}

	if v == nil {
		v = rule.DefaultValidator()
	}
	rules, err := v.ParseHeader(content)
	if err != nil {
		return nil, err
	}
	h.Rules = rules
	return h, nil
}
