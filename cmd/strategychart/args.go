package main

import "strings"

// defaultSaveMarker is the --save value when the flag is given without a file name;
// it is replaced by output.default_name once the configuration is loaded.
const defaultSaveMarker = "\x00default"

// normalizeSaveArgs rewrites "--save <name>" into "--save=<name>" when the next token
// is not a flag. A bare "--save" is left alone and picks up the flag's no-value default.
func normalizeSaveArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		if a == "--save" && i+1 < len(args) && !isFlag(args[i+1]) {
			out = append(out, "--save="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

// isFlag reports whether tok looks like a long or short flag; a lone "-" does not.
func isFlag(tok string) bool {
	return len(tok) > 1 && strings.HasPrefix(tok, "-")
}

// resolveSavePath maps the raw --save value to a path; "" means no save was requested.
func resolveSavePath(raw, defaultName string) string {
	if raw == defaultSaveMarker {
		return defaultName
	}
	return raw
}
