// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'"':  '"',
	'/':  '/',
	'\\': '\\',
}

const hexDigit = "0123456789ABCDEF"

// IsControl reports whether r is a control character that may not appear
// unescaped in a JSON string: U+0000 to U+001F, or U+007F to U+009F.
func IsControl(r rune) bool {
	return (r >= 0 && r <= 0x1f) || (r >= 0x7f && r <= 0x9f)
}

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The result does not include the enclosing quotation marks.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()), src) }

// AppendQuote appends the escaped encoding of src to buf and returns the
// updated slice. The enclosing quotation marks are not added.
func AppendQuote(buf []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf && int(r) < len(shortEsc) && shortEsc[r] != 0 {
			buf = append(buf, '\\', shortEsc[r])
		} else if IsControl(r) {
			buf = append(buf, '\\', 'u',
				hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
		} else if r < utf8.RuneSelf {
			buf = append(buf, byte(r))
		} else {
			// Invalid UTF-8 decodes as the replacement rune, which we write in
			// its valid encoding so the output is always well-formed.
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
