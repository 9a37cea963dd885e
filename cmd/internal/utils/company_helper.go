package utils

import "strings"

const CNPJLength = 14

// FormatCNPJ masks a CNPJ as 00.000.000/0000-00 when it holds exactly 14
// digits once punctuation is stripped. Anything else is returned untouched,
// the dashboard only displays registry numbers and never rejects them.
func FormatCNPJ(cnpj string) string {
	digits := OnlyDigits(cnpj)
	if len(digits) != CNPJLength {
		return cnpj
	}

	var b strings.Builder
	b.Grow(CNPJLength + 4)
	b.WriteString(digits[0:2])
	b.WriteByte('.')
	b.WriteString(digits[2:5])
	b.WriteByte('.')
	b.WriteString(digits[5:8])
	b.WriteByte('/')
	b.WriteString(digits[8:12])
	b.WriteByte('-')
	b.WriteString(digits[12:14])
	return b.String()
}

func OnlyDigits(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
