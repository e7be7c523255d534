package cmd

import (
	"gopkg.in/yaml.v3"
)

// parseArgs turns command line words into action arguments. Each word is
// read as a YAML scalar or flow value, so 3 is an int, true a bool and
// "{a: 1}" a map; null and ~ are nil. Anything that fails to parse, and the
// empty word, stays a string.
func parseArgs(words []string) []any {
	if len(words) == 0 {
		return nil
	}
	args := make([]any, 0, len(words))
	for _, w := range words {
		var v any
		if err := yaml.Unmarshal([]byte(w), &v); err != nil || w == "" {
			args = append(args, w)
			continue
		}
		args = append(args, v)
	}
	return args
}
