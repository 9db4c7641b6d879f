package domain

import "strings"

// RestCode is the reserved base code for a rest day. It never reaches the hydrator.
const RestCode = "R"

// Token is the compact textual notation for a workout: "BASE" or "BASE/PARAM",
// e.g. "E4", "WR/5A", "X40", "R".
type Token string

// Split separates a token into its base code and parameter.
//
//	"WR/5A" -> ("WR", "5A")
//	"E4"    -> ("E", "4")
//	"R"     -> ("R", "")
//
// Without a slash the base is the leading run of letters and the rest is the param.
func (t Token) Split() (base, param string) {
	s := strings.TrimSpace(string(t))
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], s[i+1:]
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// IsRest reports whether the token encodes a rest day.
func (t Token) IsRest() bool {
	base, _ := t.Split()
	return base == RestCode
}

func (t Token) String() string {
	return string(t)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
