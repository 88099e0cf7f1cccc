package variables

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Format expands the conversions in format in a single left to right scan.
// A conversion is looked up in custom first, longest token winning, so "%lm"
// is taken before "%l". Anything else goes to strftime with t. The E and O
// modifiers are accepted and dropped when the bare conversion is not custom.
func Format(format string, t time.Time, custom map[string]string) string {
	longest := 0
	for k := range custom {
		if len(k) > longest {
			longest = len(k)
		}
	}

	var sb strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			i++
			continue
		}
		rest := format[i+1:]

		if tok, ok := match(rest, custom, longest); ok {
			sb.WriteString(custom[tok])
			i += 1 + len(tok)
			continue
		}

		n := 1
		if (rest[0] == 'E' || rest[0] == 'O') && len(rest) > 1 {
			n = 2
		}
		conv := rest[n-1]
		if conv >= 0x80 {
			sb.WriteByte('%')
			i++
			continue
		}
		if v, ok := custom[string(conv)]; ok {
			sb.WriteString(v)
		} else {
			sb.WriteString(strftime.Format("%"+string(conv), t))
		}
		i += 1 + n
	}
	return sb.String()
}

func match(s string, custom map[string]string, longest int) (string, bool) {
	for n := min(longest, len(s)); n > 0; n-- {
		if _, ok := custom[s[:n]]; ok {
			return s[:n], true
		}
	}
	return "", false
}
