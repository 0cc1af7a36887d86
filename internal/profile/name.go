package profile

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

var titleCaser = cases.Title(language.Und)

// NormalizeName trims, NFC-normalizes and collapses internal whitespace.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// NameFromEmail derives a display name from the local part of an email
// address: "ana.maria_s@x.org" becomes "Ana Maria S". The result is cut to
// the maximum display name length.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, local)

	name := titleCaser.String(NormalizeName(local))
	if runes := []rune(name); len(runes) > domain.MaxDisplayNameLength {
		name = strings.TrimSpace(string(runes[:domain.MaxDisplayNameLength]))
	}
	return name
}
