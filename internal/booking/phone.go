package booking

import (
	"fmt"
	"strings"
)

// FormatPhone reshapes input into "(555) 123-4567" once ten digits have been
// entered. Anything shorter is returned untouched so partial typing is never
// mangled; digits past the tenth are dropped.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}
