package lsystem

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// ErrInvalidGrammar is returned when an axiom or production rule references a symbol outside the
// alphabet.
var ErrInvalidGrammar = errors.New("invalid grammar")

// Symbol is one letter of the L-system alphabet.
type Symbol rune

const (
	// SymbolA is a non-terminal with no drawing effect.
	SymbolA Symbol = 'A'
	// SymbolB is a non-terminal with no drawing effect.
	SymbolB Symbol = 'B'
	// SymbolX is a non-terminal with no drawing effect.
	SymbolX Symbol = 'X'
	// SymbolF moves the turtle forward, drawing.
	SymbolF Symbol = 'F'
	// SymbolG moves the turtle forward, drawing (alias of F used by some grammars).
	SymbolG Symbol = 'G'
	// SymbolTurnLeft turns the turtle counterclockwise by the angle increment.
	SymbolTurnLeft Symbol = '+'
	// SymbolTurnRight turns the turtle clockwise by the angle increment.
	SymbolTurnRight Symbol = '-'
	// SymbolPush saves the turtle state on the branch stack.
	SymbolPush Symbol = '['
	// SymbolPop restores the turtle state from the branch stack.
	SymbolPop Symbol = ']'
)

var alphabet = map[Symbol]bool{
	SymbolA:         true,
	SymbolB:         true,
	SymbolX:         true,
	SymbolF:         true,
	SymbolG:         true,
	SymbolTurnLeft:  true,
	SymbolTurnRight: true,
	SymbolPush:      true,
	SymbolPop:       true,
}

// Valid returns true if the symbol belongs to the alphabet.
func (s Symbol) Valid() bool {
	return alphabet[s]
}

func (s Symbol) String() string {
	return string(rune(s))
}

// ParseSymbols parses a string into a symbol sequence. Spaces are ignored, lowercase letters are
// normalized to uppercase. It fails with ErrInvalidGrammar on any character outside the alphabet.
func ParseSymbols(str string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(str))
	for _, r := range str {
		if unicode.IsSpace(r) {
			continue
		}
		s := Symbol(unicode.ToUpper(r))
		if !s.Valid() {
			return nil, fmt.Errorf("%w: symbol %q not in alphabet", ErrInvalidGrammar, string(r))
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// SymbolsString gives the string representation of a symbol sequence.
func SymbolsString(symbols []Symbol) string {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for _, s := range symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// Rules maps a symbol to its replacement sequence. Symbols absent from the map are terminal: they
// rewrite to themselves.
type Rules map[Symbol][]Symbol

// System is a deterministic context-free L-system: an axiom plus production rules. It is immutable
// after construction; rule application never depends on neighboring symbols or iteration index.
type System struct {
	axiom []Symbol
	rules Rules
}

// NewSystem creates a System, validating the axiom and every rule against the alphabet. This is the
// only place grammar validation happens: expansion assumes a valid System.
func NewSystem(axiom []Symbol, rules Rules) (*System, error) {
	for _, s := range axiom {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: axiom symbol %q not in alphabet", ErrInvalidGrammar, s)
		}
	}
	for key, replacement := range rules {
		if !key.Valid() {
			return nil, fmt.Errorf("%w: rule key %q not in alphabet", ErrInvalidGrammar, key)
		}
		for _, s := range replacement {
			if !s.Valid() {
				return nil, fmt.Errorf(
					"%w: rule %q replacement symbol %q not in alphabet", ErrInvalidGrammar, key, s,
				)
			}
		}
	}
	system := &System{
		axiom: make([]Symbol, len(axiom)),
		rules: make(Rules, len(rules)),
	}
	copy(system.axiom, axiom)
	for key, replacement := range rules {
		system.rules[key] = append([]Symbol(nil), replacement...)
	}
	return system, nil
}

// Axiom returns a copy of the axiom.
func (y *System) Axiom() []Symbol {
	return append([]Symbol(nil), y.axiom...)
}

func (y *System) next(curr []Symbol) []Symbol {
	out := make([]Symbol, 0, len(curr))
	for _, s := range curr {
		if replacement, ok := y.rules[s]; ok {
			out = append(out, replacement...)
		} else {
			out = append(out, s)
		}
	}
	return out
}

// Expand applies the production rules n times to the axiom and returns the resulting symbol
// sequence. n=0 returns the axiom unchanged.
func (y *System) Expand(n int) []Symbol {
	curr := y.Axiom()
	for range n {
		curr = y.next(curr)
	}
	return curr
}

// GrowthEstimate projects the symbol sequence length after n iterations without materializing any
// expansion, by tracking per-symbol counts. It saturates at math.MaxInt. Branching grammars grow
// geometrically, so callers should bound-check this before expanding.
func (y *System) GrowthEstimate(n int) int {
	counts := map[Symbol]int{}
	for _, s := range y.axiom {
		counts[s]++
	}
	for range n {
		next := map[Symbol]int{}
		for s, count := range counts {
			replacement, ok := y.rules[s]
			if !ok {
				next[s] += count
				continue
			}
			for _, r := range replacement {
				c := next[r]
				if count > math.MaxInt-c {
					return math.MaxInt
				}
				next[r] = c + count
			}
		}
		counts = next
	}
	total := 0
	for _, count := range counts {
		if count > math.MaxInt-total {
			return math.MaxInt
		}
		total += count
	}
	return total
}
