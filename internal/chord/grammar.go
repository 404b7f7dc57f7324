package chord

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// replacements run in order over the whole symbol; a later entry sees the
// output of an earlier one.
var replacements = []struct{ from, to string }{
	{"♯", "#"},
	{"♭", "b"},
	{"H", "B"},
	{"Ø", "m7b5"},
	{"ø", "m7b5"},
	{"°7", "dim7"},
	{"°", "dim7"},
	{"o7", "dim7"},
	{"Δ7", "maj7"},
	{"Δ", "maj7"},
	{"M", "maj"},
}

var operators = []struct {
	token string
	op    Operator
}{
	{"#", OpRaise},
	{"b", OpLower},
	{"+", OpRaise},
	{"-", OpLower},
	{"/", OpAdd},
	{"add", OpAdd},
	{"sus", OpSuspend},
	{"no", OpOmit},
	{"omit", OpOmit},
	{"maj", OpMajor},
	{"", OpExtend},
}

// Parse decomposes a chord symbol into its token record. It fails only when
// no tonic is recognised at the start of the normalised symbol.
func Parse(input string) (Symbol, error) {
	s := Normalize(input)
	sym := Symbol{Input: input, Normalized: s}
	if strings.HasSuffix(s, "+") {
		sym.AppendedPlus = true
		s = strings.TrimSuffix(s, "+")
	}

	tonic, character, modifier, ok := matchPrimary(s)
	if !ok {
		return Symbol{}, &SymbolError{Symbol: input}
	}
	sym.Tonic = tonic
	sym.Character = character
	sym.Modifier = modifier

	rest := s[len(tonic):]
	sym.Alterations = scanAlterations(rest)
	sym.Bass = scanBass(rest)
	return sym, nil
}

// Normalize folds full-width characters, composes combining marks and
// applies the literal replacement table.
func Normalize(input string) string {
	s := strings.TrimSpace(norm.NFC.String(width.Fold.String(input)))
	for _, r := range replacements {
		if r.from == "o7" {
			s = replaceDimMark(s)
			continue
		}
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// replaceDimMark rewrites "o7" as "dim7" unless the o belongs to "no7".
func replaceDimMark(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if strings.HasPrefix(s[i:], "o7") && (i == 0 || s[i-1] != 'n') {
			b.WriteString("dim7")
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func matchPrimary(s string) (tonic string, character Character, modifier Modifier, ok bool) {
	if s == "" || s[0] < 'A' || s[0] > 'H' {
		return "", Major, NoModifier, false
	}
	n := 1
	if len(s) > 1 && (s[1] == 'b' || s[1] == '#') {
		n = 2
	}
	tonic = s[:n]
	rest := s[n:]

	// sus and maj followed by a digit are alterations, not the character.
	switch {
	case strings.HasPrefix(rest, "sus") && !digitAt(rest, 3):
		character, rest = Suspended, rest[3:]
	case strings.HasPrefix(rest, "m") && !strings.HasPrefix(rest, "maj"):
		character, rest = Minor, rest[1:]
	case strings.HasPrefix(rest, "maj") && !digitAt(rest, 3):
		character, rest = Major, rest[3:]
	default:
		character = Major
	}

	switch {
	case strings.HasPrefix(rest, "dim"):
		modifier = Diminished
	case strings.HasPrefix(rest, "aug"):
		modifier = Augmented
	}
	return tonic, character, modifier, true
}

func scanAlterations(rest string) []Alteration {
	var out []Alteration
	for pos := 0; pos < len(rest); {
		matched := false
		for _, o := range operators {
			if !strings.HasPrefix(rest[pos:], o.token) {
				continue
			}
			start := pos + len(o.token)
			end := start
			for end < len(rest) && isDigit(rest[end]) {
				end++
			}
			if end == start {
				continue
			}
			degree, err := strconv.Atoi(rest[start:end])
			if err != nil {
				degree = math.MaxInt32
			}
			out = append(out, Alteration{Op: o.op, Token: o.token, Degree: degree})
			pos = end
			matched = true
			break
		}
		if !matched {
			pos++
		}
	}
	return out
}

func scanBass(rest string) []string {
	var out []string
	for i := 0; i+1 < len(rest); i++ {
		if rest[i] != '/' || rest[i+1] < 'A' || rest[i+1] > 'H' {
			continue
		}
		end := i + 2
		if end < len(rest) && (rest[end] == 'b' || rest[end] == '#') {
			end++
		}
		out = append(out, rest[i+1:end])
		i = end - 1
	}
	return out
}

func digitAt(s string, i int) bool {
	return i < len(s) && isDigit(s[i])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
