package core

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of each word and lower-cases the rest,
// e.g. "web dev" => "Web Dev".
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
