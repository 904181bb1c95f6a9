package sanitization

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	emailShape    = regexp.MustCompile(`\S+@\S+\.\S+`)
	lineBreak     = regexp.MustCompile(`\r\n|\r|\n`)
)

// IsEmailShaped reports whether s loosely looks like local@domain.tld
func IsEmailShaped(s string) bool {
	return emailShape.MatchString(strings.TrimSpace(s))
}

// SanitizeLine collapses whitespace (including CR/LF) into single spaces and
// trims, so the value is safe inside a mail header or a one-line field
func SanitizeLine(input string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(input, " "))
}

// EscapeHTML escapes markup characters
func EscapeHTML(input string) string {
	return template.HTMLEscapeString(input)
}

// HTMLLineBreaks escapes input and turns each line break into <br>
func HTMLLineBreaks(input string) string {
	return lineBreak.ReplaceAllString(template.HTMLEscapeString(input), "<br>")
}
