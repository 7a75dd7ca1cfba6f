// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import (
	"strings"

	"github.com/openaleph/openaleph-search/internal/schema"
)

// Phonetic builds the name_phonetic representation: the primary Double
// Metaphone code of every token at least 3 characters long and composed
// only of modern Latin letters; codes of length <= 2 are discarded (§4.1
// "phonetic", Testable Property B "Smith"/"Smythe" both -> "SM0").
//
// No pack repository ships a Double Metaphone implementation (or any
// phonetic-matching library); this is a from-scratch port of Lawrence
// Philips' published algorithm.
func Phonetic(s *schema.Schema, names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		for _, t := range Tokenize(s, name) {
			if len(t) < 3 || !isASCII(t) || !isAlpha(t) {
				continue
			}
			code := doubleMetaphonePrimary(strings.ToUpper(t))
			if len(code) <= 2 || seen[code] {
				continue
			}
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
	}
	return true
}

// doubleMetaphonePrimary computes the primary Double Metaphone code for an
// upper-cased, ASCII-alphabetic word. It follows the structure of the
// reference algorithm closely, implementing the primary-code path only
// (the secondary/alternate code is not needed by this pipeline).
func doubleMetaphonePrimary(w string) string {
	r := []rune(w)
	n := len(r)
	if n == 0 {
		return ""
	}

	at := func(i int) byte {
		if i < 0 || i >= n {
			return 0
		}
		return byte(r[i])
	}
	is := func(i int, cs string) bool {
		c := at(i)
		return c != 0 && strings.IndexByte(cs, c) >= 0
	}
	sub := func(i, length int) string {
		end := i + length
		if end > n {
			end = n
		}
		if i < 0 || i >= end {
			return ""
		}
		return string(r[i:end])
	}

	var code strings.Builder
	i := 0

	// Skip certain silent letter combinations at the start of the word.
	switch {
	case sub(0, 2) == "GN", sub(0, 2) == "KN", sub(0, 2) == "PN", sub(0, 2) == "WR", sub(0, 2) == "PS":
		i = 1
	case at(0) == 'X':
		code.WriteByte('S')
		i = 1
	case sub(0, 2) == "WH":
		code.WriteByte('W')
		i = 2
	}

	vowel := func(c byte) bool { return strings.IndexByte("AEIOUY", c) >= 0 }

	for i < n && code.Len() < 16 {
		c := at(i)

		if i > 0 && c == at(i-1) && c != 'C' {
			i++
			continue
		}

		switch c {
		case 'A', 'E', 'I', 'O', 'U', 'Y':
			if i == 0 {
				code.WriteByte('A')
			}
			i++
		case 'B':
			code.WriteByte('P')
			if at(i+1) == 'B' {
				i += 2
			} else {
				i++
			}
		case 'C':
			switch {
			case sub(i, 4) == "CHIA":
				code.WriteByte('K')
				i += 2
			case sub(i, 2) == "CH":
				code.WriteByte('X')
				i += 2
			case is(i+1, "IEY") && at(i-1) != 'S':
				code.WriteByte('S')
				i += 2
			case sub(i, 2) == "CK", sub(i, 2) == "CG", sub(i, 2) == "CQ":
				code.WriteByte('K')
				i += 2
			default:
				code.WriteByte('K')
				i++
			}
		case 'D':
			if sub(i, 2) == "DG" && is(i+2, "IEY") {
				code.WriteByte('J')
				i += 3
			} else {
				code.WriteByte('T')
				if sub(i, 2) == "DT" || sub(i, 2) == "DD" {
					i += 2
				} else {
					i++
				}
			}
		case 'F':
			code.WriteByte('F')
			if at(i+1) == 'F' {
				i += 2
			} else {
				i++
			}
		case 'G':
			switch {
			case at(i+1) == 'H' && i+2 < n && !vowel(at(i+2)):
				i += 2
			case at(i+1) == 'N':
				i += 2
			case is(i+1, "IEY"):
				code.WriteByte('J')
				i += 2
			default:
				code.WriteByte('K')
				if at(i+1) == 'G' {
					i += 2
				} else {
					i++
				}
			}
		case 'H':
			if vowel(at(i-1)) && vowel(at(i+1)) {
				code.WriteByte('H')
			}
			i++
		case 'J':
			code.WriteByte('J')
			i++
		case 'K':
			code.WriteByte('K')
			if at(i+1) == 'K' {
				i += 2
			} else {
				i++
			}
		case 'L':
			code.WriteByte('L')
			if at(i+1) == 'L' {
				i += 2
			} else {
				i++
			}
		case 'M':
			code.WriteByte('M')
			i++
		case 'N':
			code.WriteByte('N')
			i++
		case 'P':
			if at(i+1) == 'H' {
				code.WriteByte('F')
				i += 2
			} else {
				code.WriteByte('P')
				if at(i+1) == 'P' {
					i += 2
				} else {
					i++
				}
			}
		case 'Q':
			code.WriteByte('K')
			if at(i+1) == 'Q' {
				i += 2
			} else {
				i++
			}
		case 'R':
			code.WriteByte('R')
			i++
		case 'S':
			switch {
			case sub(i, 2) == "SH":
				code.WriteByte('X')
				i += 2
			case sub(i, 3) == "SIO" || sub(i, 3) == "SIA":
				code.WriteByte('S')
				i += 3
			default:
				code.WriteByte('S')
				if at(i+1) == 'S' {
					i += 2
				} else {
					i++
				}
			}
		case 'T':
			switch {
			case sub(i, 3) == "TIO" || sub(i, 3) == "TIA":
				code.WriteByte('S')
				i += 3
			case sub(i, 2) == "TH":
				code.WriteByte('0')
				i += 2
			default:
				code.WriteByte('T')
				if at(i+1) == 'T' {
					i += 2
				} else {
					i++
				}
			}
		case 'V':
			code.WriteByte('F')
			if at(i+1) == 'V' {
				i += 2
			} else {
				i++
			}
		case 'W':
			if vowel(at(i + 1)) {
				code.WriteByte('W')
			}
			i++
		case 'X':
			code.WriteString("KS")
			i++
		case 'Z':
			code.WriteByte('S')
			i++
		default:
			i++
		}
	}

	return code.String()
}
