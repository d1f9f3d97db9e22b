// Package loader reads template files and converts them between their
// on-disk character encoding and UTF-8.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is given.
const DefaultEncoding = "utf-8"

// aliases maps encoding names that are not WHATWG labels onto encodings.
// latin1 and binary are true ISO-8859-1 here, not the windows-1252
// superset that htmlindex resolves "latin1" to.
var aliases = map[string]encoding.Encoding{
	"utf8":    unicode.UTF8,
	"utf16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"ucs2":    unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"ucs-2":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"latin1":  charmap.ISO8859_1,
	"binary":  charmap.ISO8859_1,
}

// EncodingError is returned for an encoding name that is not recognised.
type EncodingError struct {
	Name string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("unknown encoding %q", e.Name)
}

// Lookup resolves an encoding name. An empty name means UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return unicode.UTF8, nil
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, &EncodingError{Name: name}
	}
	return enc, nil
}

// IsUTF8 reports whether name resolves to UTF-8.
func IsUTF8(name string) bool {
	enc, err := Lookup(name)
	return err == nil && enc == unicode.UTF8
}

// Decode converts raw bytes in the named encoding to a UTF-8 string.
// UTF-8 input is returned as is, including any byte order mark.
func Decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to the named encoding.
func Encode(text, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return out, nil
}

// Load reads path from fsys and decodes it. A nil fsys reads from the
// operating system, so path may be absolute or relative to the working
// directory. Read errors are wrapped and keep their fs sentinel.
func Load(fsys fs.FS, path, name string) (string, error) {
	if _, err := Lookup(name); err != nil {
		return "", err
	}

	var data []byte
	var err error
	if fsys == nil {
		data, err = os.ReadFile(path)
	} else {
		data, err = fs.ReadFile(fsys, path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, name)
}
