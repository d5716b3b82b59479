package core

import "strings"

// ShellEscapePosix returns a single shell token using single-quote strategy,
// including surrounding single quotes. Tokens made only of safe characters
// are returned unquoted.
// example: abc -> abc
// example: a b -> 'a b'
// example: a'b -> 'a'"'"'b'
// example: "" -> ''
func ShellEscapePosix(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}
	escaped := strings.ReplaceAll(s, "'", "'\"'\"'")
	return "'" + escaped + "'"
}

// CommandLine renders name and args as a copy-pasteable shell command.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, ShellEscapePosix(name))
	for _, a := range args {
		parts = append(parts, ShellEscapePosix(a))
	}
	return strings.Join(parts, " ")
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:@=+,%", r):
		default:
			return false
		}
	}
	return true
}
