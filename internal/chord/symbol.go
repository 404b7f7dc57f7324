package chord

// Character is the primary chord quality.
type Character int

const (
	Major Character = iota
	Minor
	Suspended
)

func (c Character) String() string {
	switch c {
	case Minor:
		return "minor"
	case Suspended:
		return "suspended"
	}
	return "major"
}

// Modifier is applied after every alteration.
type Modifier int

const (
	NoModifier Modifier = iota
	Diminished
	Augmented
)

func (m Modifier) String() string {
	switch m {
	case Diminished:
		return "dim"
	case Augmented:
		return "aug"
	}
	return ""
}

// Operator classifies an alteration token.
type Operator int

const (
	OpExtend  Operator = iota // bare number: 7, 9, 13
	OpMajor                   // maj7
	OpAdd                     // add9, /9
	OpLower                   // b5, -5
	OpRaise                   // #9, +5
	OpSuspend                 // sus2, sus4
	OpOmit                    // no3, omit5
)

func (o Operator) String() string {
	switch o {
	case OpMajor:
		return "maj"
	case OpAdd:
		return "add"
	case OpLower:
		return "lower"
	case OpRaise:
		return "raise"
	case OpSuspend:
		return "sus"
	case OpOmit:
		return "omit"
	}
	return "extend"
}

// Alteration is one (operator, degree) instruction in left-to-right order.
type Alteration struct {
	Op     Operator
	Token  string
	Degree int
}

// Symbol is the token record produced by Parse and consumed once by an
// Interpreter.
type Symbol struct {
	Input        string
	Normalized   string
	Tonic        string
	Character    Character
	Modifier     Modifier
	Alterations  []Alteration
	Bass         []string
	AppendedPlus bool
}
