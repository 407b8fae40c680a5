package main

import "strings"

// listFlags take every following non-flag token as another value, so
// "--hashtags '#a' '#b' --input_paths f1 f2" means the same as repeating
// each flag once per value.
var listFlags = map[string]bool{
	"hashtags":    true,
	"input_paths": true,
}

// expandListFlags rewrites "--name v1 v2" as "--name v1 --name v2" for every
// list flag. A token starting with "-" ends the list; everything after "--"
// is passed through untouched.
func expandListFlags(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)

		case strings.HasPrefix(arg, "-") && arg != "-":
			current = ""
			out = append(out, arg)
			name, _, inline := strings.Cut(strings.TrimLeft(arg, "-"), "=")
			if !listFlags[name] {
				continue
			}
			current = name
			if !inline && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}

		case current != "":
			out = append(out, "--"+current, arg)

		default:
			out = append(out, arg)
		}
	}
	return out
}
