package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// plainEncodings are tried in order for text uploads that are not valid
// UTF-8. Latin-1 maps every byte, so the last-resort lossy replacement
// below is rarely reached.
var plainEncodings = []*charmap.Charmap{
	charmap.Windows1251,
	charmap.ISO8859_1,
}

// extractPlain decodes a text upload. Valid UTF-8 passes through
// unchanged; otherwise cp1251 and latin1 are tried in order, and as a
// last resort invalid sequences are replaced so some text is always
// returned.
func extractPlain(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	for _, enc := range plainEncodings {
		decoded, err := enc.NewDecoder().Bytes(content)
		if err != nil {
			continue
		}
		text := string(decoded)
		if !strings.ContainsRune(text, utf8.RuneError) {
			return text, nil
		}
	}
	return strings.ToValidUTF8(string(content), "�"), nil
}
