package mutate

import (
	"fmt"
	"regexp"
	"strings"
)

// jsBlock is a top-level `const NAME = { ... };` object literal. The block
// ends at the brace that balances the opening one, which must be followed
// by ";".
type jsBlock struct {
	Start int // byte offset of the declaration line
	End   int // byte offset just past the closing "};"
	Body  string
}

// findBlock locates the named block in src. found is false when there is no
// declaration; err is set when the declaration is there but its braces never
// balance or the closing brace is not followed by ";".
func findBlock(src, name string) (b jsBlock, found bool, err error) {
	decl := regexp.MustCompile(`(?m)^[ \t]*const[ \t]+` + regexp.QuoteMeta(name) + `[ \t]*=[ \t]*\{`)
	loc := decl.FindStringIndex(src)
	if loc == nil {
		return jsBlock{}, false, nil
	}

	open := loc[1] - 1
	closing, err := matchBrace(src, open)
	if err != nil {
		return jsBlock{}, true, fmt.Errorf("%s: %w", name, err)
	}
	rest := src[closing+1:]
	gap := len(rest) - len(strings.TrimLeft(rest, " \t"))
	if gap >= len(rest) || rest[gap] != ';' {
		return jsBlock{}, true, fmt.Errorf("%s: closing brace is not followed by \";\"", name)
	}
	return jsBlock{
		Start: loc[0],
		End:   closing + 1 + gap + 1,
		Body:  src[open+1 : closing],
	}, true, nil
}

// matchBrace returns the offset of the brace closing the one at open.
// Braces inside string literals and comments are ignored.
func matchBrace(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); {
		switch c := s[i]; {
		case strings.HasPrefix(s[i:], "//"):
			nl := strings.IndexByte(s[i:], '\n')
			if nl < 0 {
				return -1, fmt.Errorf("unbalanced braces")
			}
			i += nl
			continue
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return -1, fmt.Errorf("unterminated comment")
			}
			i += end + 4
			continue
		case c == '\'' || c == '"' || c == '`':
			_, n, err := readString(s[i:])
			if err != nil {
				return -1, err
			}
			i += n
			continue
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
		i++
	}
	return -1, fmt.Errorf("unbalanced braces")
}

// replaceBlock swaps the named block for replacement. Callers check the
// block's contents first.
func replaceBlock(src, name, replacement string) (string, error) {
	b, found, err := findBlock(src, name)
	if err != nil {
		return src, err
	}
	if !found {
		return src, fmt.Errorf("%s: block not found", name)
	}
	return src[:b.Start] + replacement + src[b.End:], nil
}

// jsEntry is one `key: { field: value, ... }` member of an object literal.
type jsEntry struct {
	Key    string
	Fields map[string]string
	Order  []string
}

// parseEntries reads the members of a flat object literal body: each member
// is a key mapped to an object whose fields are scalars.
func parseEntries(body string) ([]jsEntry, error) {
	toks, err := tokenize(body)
	if err != nil {
		return nil, err
	}

	var entries []jsEntry
	i := 0
	next := func() (token, bool) {
		if i >= len(toks) {
			return token{}, false
		}
		t := toks[i]
		i++
		return t, true
	}
	expect := func(punct string) error {
		t, ok := next()
		if !ok || t.kind != tokPunct || t.text != punct {
			return fmt.Errorf("expected %q at token %d", punct, i)
		}
		return nil
	}

	for i < len(toks) {
		key, _ := next()
		if key.kind == tokPunct {
			if key.text == "," {
				continue
			}
			return nil, fmt.Errorf("unexpected %q", key.text)
		}
		if err := expect(":"); err != nil {
			return nil, err
		}
		if err := expect("{"); err != nil {
			return nil, err
		}

		e := jsEntry{Key: key.text, Fields: map[string]string{}}
		for {
			t, ok := next()
			if !ok {
				return nil, fmt.Errorf("unterminated entry %q", e.Key)
			}
			if t.kind == tokPunct && t.text == "}" {
				break
			}
			if t.kind == tokPunct && t.text == "," {
				continue
			}
			if t.kind == tokPunct {
				return nil, fmt.Errorf("unexpected %q in entry %q", t.text, e.Key)
			}
			if err := expect(":"); err != nil {
				return nil, err
			}
			v, ok := next()
			if !ok || v.kind == tokPunct {
				return nil, fmt.Errorf("missing value for %s.%s", e.Key, t.text)
			}
			e.Fields[t.text] = v.text
			e.Order = append(e.Order, t.text)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type tokKind int

const (
	tokWord tokKind = iota
	tokString
	tokPunct
)

type token struct {
	kind tokKind
	text string // unquoted for strings
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.HasPrefix(s[i:], "//"):
			nl := strings.IndexByte(s[i:], '\n')
			if nl < 0 {
				i = len(s)
			} else {
				i += nl
			}
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment")
			}
			i += end + 4
		case c == '{' || c == '}' || c == ':' || c == ',':
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++
		case c == '\'' || c == '"' || c == '`':
			text, n, err := readString(s[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: text})
			i += n
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\r\n{}:,'\"`", rune(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: s[i:j]})
			i = j
		}
	}
	return toks, nil
}

// readString reads a quoted literal at the start of s and returns its
// unescaped text and the number of bytes consumed.
func readString(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		case c == quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

var jsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// jsKey renders an object key, quoting it only when it is not a valid
// identifier.
func jsKey(k string) string {
	if jsIdent.MatchString(k) {
		return k
	}
	return jsString(k)
}
