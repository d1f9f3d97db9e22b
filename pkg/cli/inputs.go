package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandInputs turns command arguments into template paths. Arguments with
// glob metacharacters are expanded (** matches across directories); other
// arguments are taken literally. Order follows the arguments, each glob's
// matches sorted, with duplicates dropped.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		if !isGlob(arg) {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// outputPath returns where `render --write` puts the result for input:
// the input path without suffix.
func outputPath(input, suffix string) (string, error) {
	if suffix == "" || !strings.HasSuffix(input, suffix) || input == suffix {
		return "", fmt.Errorf("%s: name does not end in %q", input, suffix)
	}
	return strings.TrimSuffix(input, suffix), nil
}
