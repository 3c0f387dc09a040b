package extract

import (
	"strings"

	"github.com/fwojciec/tgfeed"
)

// ParseStyle parses an inline CSS declaration list such as
// "width:100%;background-image:url('a.jpg')" into lowercased property
// names and trimmed values. Semicolons inside quotes or parentheses do not
// split declarations. When a property repeats, the last value wins.
func ParseStyle(style string) map[string]string {
	decls := make(map[string]string)
	for _, decl := range splitDeclarations(style) {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		decls[name] = strings.TrimSpace(value)
	}
	return decls
}

func splitDeclarations(style string) []string {
	var (
		decls []string
		quote rune
		depth int
		start int
	)
	for i, r := range style {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			decls = append(decls, style[start:i])
			start = i + 1
		}
	}
	return append(decls, style[start:])
}

// CSSURL returns the argument of the first url(...) in a CSS value, with
// surrounding quotes removed.
func CSSURL(value string) (string, bool) {
	lower := strings.ToLower(value)
	i := strings.Index(lower, "url(")
	if i < 0 {
		return "", false
	}
	rest := value[i+len("url("):]

	var arg string
	if rest != "" && (rest[0] == '\'' || rest[0] == '"') {
		end := strings.IndexByte(rest[1:], rest[0])
		if end < 0 {
			return "", false
		}
		arg = rest[1 : end+1]
	} else {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return "", false
		}
		arg = strings.TrimSpace(rest[:end])
	}

	if arg == "" {
		return "", false
	}
	return arg, true
}

// BackgroundImageURL returns the image URL of an inline style's
// background-image (or background shorthand) declaration.
// Returns EMALFORMEDMEDIA if the style carries no image URL.
func BackgroundImageURL(style string) (string, error) {
	decls := ParseStyle(style)
	for _, prop := range []string{"background-image", "background"} {
		value, ok := decls[prop]
		if !ok {
			continue
		}
		if u, ok := CSSURL(value); ok {
			return u, nil
		}
	}
	return "", tgfeed.Errorf(tgfeed.EMALFORMEDMEDIA, "no background image in style %q", style)
}
