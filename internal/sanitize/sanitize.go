// Package sanitize normalizes user-supplied names and emails into the
// canonical form used for storage and uniqueness checks.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	localPartJunk = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	domainJunk    = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	countryCom    = regexp.MustCompile(`^.*\.com\.[a-zA-Z]{2,}$`)
	comSuffix     = regexp.MustCompile(`\.com.*`)
)

// Name canonicalizes a person name: whitespace is trimmed and collapsed,
// and each rune survives only if its decomposed (accent-stripped) form is an
// ASCII letter or whitespace. Accented letters are kept as-is; digits and
// punctuation become spaces. The result is lowercase with single spaces.
func Name(raw string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if decomposesToLetterOrSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	name = strings.ToLower(b.String())
	name = whitespaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Email canonicalizes an email address. The input is lowercased and
// accent-stripped; extra '@' signs after the first are deleted; a missing
// '@' gets the example.com domain appended. The local part keeps only
// [a-zA-Z0-9._-], the domain only [a-zA-Z0-9.-]. A ".com<junk>" domain
// suffix collapses to ".com" unless the domain is a country form like
// ".com.br", which is preserved.
func Email(raw string) string {
	email := stripMarks(strings.ToLower(raw))

	parts := strings.Split(email, "@")
	if len(parts) > 2 {
		email = parts[0] + "@" + strings.Join(parts[1:], "")
	}

	if !strings.Contains(email, "@") {
		email += "@example.com"
	}

	local, domain, _ := strings.Cut(email, "@")
	local = localPartJunk.ReplaceAllString(local, "")
	domain = domainJunk.ReplaceAllString(domain, "")

	if !countryCom.MatchString(domain) {
		domain = comSuffix.ReplaceAllString(domain, ".com")
	}

	return local + "@" + domain
}

// stripMarks applies NFKD decomposition and drops combining marks,
// so "José" becomes "Jose".
func stripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decomposesToLetterOrSpace reports whether the rune's accent-stripped
// decomposition consists solely of ASCII letters or whitespace.
func decomposesToLetterOrSpace(r rune) bool {
	base := stripMarks(string(r))
	if base == "" {
		return false
	}
	for _, br := range base {
		if isASCIILetter(br) || unicode.IsSpace(br) {
			continue
		}
		return false
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
