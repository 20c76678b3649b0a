package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// EmailMaxLen is the longest address accepted (RFC 5321) / Longueur max d'une adresse
const EmailMaxLen = 254

// isValidEmail validates an email address format.
// It checks:
//   - Valid RFC 5322 format using net/mail.ParseAddress
//   - Maximum length of 254 characters (RFC 5321)
//   - Non-empty string without surrounding spaces
func isValidEmail(email string) bool {
	if email == "" || len(email) > EmailMaxLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// Reject "Name <addr>" forms, only a bare address is stored
	return err == nil && addr.Address == email
}

// blank reports whether s is empty once trimmed / Indique si s est vide une fois nettoyée
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// tooLong reports whether s has more than max characters / Indique si s dépasse max caractères
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// trimmed returns a trimmed copy of an optional string / Retourne une copie nettoyée d'une chaîne optionnelle
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// column pairs a text field with the width of its column / Associe un champ texte à la largeur de sa colonne
type column struct {
	name  string
	value *string
	width int
}

// checkWidths reports the first value wider than its column / Signale la première valeur plus large que sa colonne
func checkWidths(cols ...column) error {
	for _, c := range cols {
		if c.value != nil && tooLong(*c.value, c.width) {
			return invalid(c.name, "must be at most %d characters", c.width)
		}
	}
	return nil
}
