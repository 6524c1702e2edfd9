package core

import "strings"

// QuoteIdentifier wraps name in ANSI double quotes, doubling embedded quotes.
// MySQL reads these as identifiers when the session runs with ANSI_QUOTES.
func QuoteIdentifier(name string) string {
	name = strings.TrimSpace(name)
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteString renders value as a single-quoted MySQL string literal.
func QuoteString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + len(value)/10 + 2)

	b.WriteByte('\'')
	for _, char := range value {
		switch char {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		case '\x00':
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1A': // Ctrl+Z
			b.WriteString(`\Z`)
		default:
			b.WriteRune(char)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// QuoteValue renders v as a string literal. Integers are quoted too; MySQL
// converts '1' to 1 on insert into an INT column.
func QuoteValue(v Value) string {
	return QuoteString(v.String())
}
