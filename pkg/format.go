package pkg

import (
	"strings"
	"unicode"
)

// OnlyDigits strips every non-digit rune ("11.222.333/0001-81" => "11222333000181").
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatDocument renders a CNPJ as 00.000.000/0000-00 and a CPF as
// 000.000.000-00. Anything else is returned as is.
func FormatDocument(doc string) string {
	d := OnlyDigits(doc)
	switch len(d) {
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	}
	return doc
}

// FormatPhone renders 10 or 11 digit Brazilian numbers as (00)0000-0000 or
// (00)00000-0000.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ")" + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ")" + d[2:6] + "-" + d[6:10]
	}
	return phone
}
