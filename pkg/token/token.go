// Package token scans configurator documents for placeholder tokens.
//
// A token has the form <delim><name>[:<data>]<delim> where <delim> is either
// '@' or '$' and both ends use the same character:
//
//	@name@            use the default rule
//	@name:#rule@      use the rule named "rule" from the document header
//	@name:{...}@      use an inline JSON rule
//	$name$ ...        same forms with the '$' delimiter
//
// The first closing delimiter ends a token and there is no escaping, so
// inline JSON must not contain the delimiter character. Tokens never span
// lines.
//
// A match with an empty name, such as "@@" or "@:x@", is not a token: Scan
// skips it and rendering leaves it in the output unchanged.
package token

import (
	"regexp"
	"strings"
)

// Delimiters.
const (
	DelimAt     byte = '@'
	DelimDollar byte = '$'
)

// RefPrefix marks token data that references a header rule.
const RefPrefix = "#"

// Source identifies where the rule for a token comes from.
type Source int

const (
	// SourceNone means the token carries no data and uses the default rule.
	SourceNone Source = iota
	// SourceHeader means the data is a #name reference into the header.
	SourceHeader
	// SourceInline means the data is an inline JSON rule.
	SourceInline
)

func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceHeader:
		return "header"
	case SourceInline:
		return "inline"
	default:
		return "unknown"
	}
}

var tokenRegex = regexp.MustCompile(`@([^@\r\n]*)@|\$([^$\r\n]*)\$`)

// Token is a single placeholder occurrence.
type Token struct {
	// Delim is DelimAt or DelimDollar.
	Delim byte

	// Name is the context key. It is never empty.
	Name string

	// Data is the raw rule specifier after the colon. Only meaningful when
	// HasData is true.
	Data    string
	HasData bool

	// Start and End are the byte offsets of the token in the scanned text.
	Start int
	End   int

	// Raw is the full matched text, delimiters included.
	Raw string
}

// Source reports which rule source the token's data selects.
func (t Token) Source() Source {
	switch {
	case !t.HasData:
		return SourceNone
	case strings.HasPrefix(t.Data, RefPrefix):
		return SourceHeader
	default:
		return SourceInline
	}
}

// Ref returns the header rule name for SourceHeader tokens.
func (t Token) Ref() string {
	if t.Source() != SourceHeader {
		return ""
	}
	return strings.TrimPrefix(t.Data, RefPrefix)
}

// Scan returns all tokens in text, left to right. Matches with an empty name
// (such as "@@") are not tokens and are skipped.
func Scan(text string) []Token {
	var tokens []Token
	for _, loc := range tokenRegex.FindAllStringSubmatchIndex(text, -1) {
		tok, ok := Parse(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		tok.Start = loc[0]
		tok.End = loc[1]
		tokens = append(tokens, tok)
	}
	return tokens
}

// Parse parses a single delimited token such as "@key:{}@". It reports false
// when raw is not a well-formed token. Start and End are left at zero.
func Parse(raw string) (Token, bool) {
	if len(raw) < 3 {
		return Token{}, false
	}
	delim := raw[0]
	if (delim != DelimAt && delim != DelimDollar) || raw[len(raw)-1] != delim {
		return Token{}, false
	}

	inner := raw[1 : len(raw)-1]
	if strings.IndexByte(inner, delim) >= 0 || strings.ContainsAny(inner, "\r\n") {
		return Token{}, false
	}

	tok := Token{Delim: delim, Raw: raw}
	name, data, found := strings.Cut(inner, ":")
	tok.Name = name
	if found && data != "" {
		tok.Data = data
		tok.HasData = true
	}
	if tok.Name == "" {
		return Token{}, false
	}
	return tok, true
}
