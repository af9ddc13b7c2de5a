// Package figures holds the built-in figure presets and loads user-defined figures from
// configuration files.
package figures

import (
	"fmt"
	"math"
	"sort"

	"github.com/fornellas/l2g/compiler"
	"github.com/fornellas/l2g/geom"
	"github.com/fornellas/l2g/lsystem"
)

// Figure is a named L-system plus the compile parameters that produce a good-looking toolpath
// for it.
type Figure struct {
	Name        string
	Description string
	Axiom       string
	Rules       map[string]string
	Params      compiler.Params
}

// System builds the validated L-system for the figure.
func (f Figure) System() (*lsystem.System, error) {
	axiom, err := lsystem.ParseSymbols(f.Axiom)
	if err != nil {
		return nil, fmt.Errorf("figure %s: axiom: %w", f.Name, err)
	}
	rules := lsystem.Rules{}
	for key, replacement := range f.Rules {
		keySymbols, err := lsystem.ParseSymbols(key)
		if err != nil {
			return nil, fmt.Errorf("figure %s: rule %q: %w", f.Name, key, err)
		}
		if len(keySymbols) != 1 {
			return nil, fmt.Errorf(
				"%w: figure %s: rule key %q must be a single symbol",
				lsystem.ErrInvalidGrammar, f.Name, key,
			)
		}
		replacementSymbols, err := lsystem.ParseSymbols(replacement)
		if err != nil {
			return nil, fmt.Errorf("figure %s: rule %q: %w", f.Name, key, err)
		}
		rules[keySymbols[0]] = replacementSymbols
	}
	return lsystem.NewSystem(axiom, rules)
}

var presets = map[string]Figure{
	"koch": {
		Name:        "koch",
		Description: "Koch curve",
		Axiom:       "F",
		Rules:       map[string]string{"F": "F+F-F-F+F"},
		Params: compiler.Params{
			Iterations:     3,
			AngleIncrement: math.Pi / 2,
			StepSize:       5,
		},
	},
	"hilbert": {
		Name:        "hilbert",
		Description: "Hilbert space-filling curve",
		Axiom:       "A",
		Rules: map[string]string{
			"A": "+BF-AFA-FB+",
			"B": "-AF+BFB+FA-",
		},
		Params: compiler.Params{
			Iterations:     5,
			AngleIncrement: math.Pi / 2,
			StepSize:       5,
		},
	},
	"sierpinsky": {
		Name:        "sierpinsky",
		Description: "Sierpinsky triangle",
		Axiom:       "F-G-G",
		Rules: map[string]string{
			"F": "F-G+F+G-F",
			"G": "GG",
		},
		Params: compiler.Params{
			Iterations:     5,
			AngleIncrement: 2 * math.Pi / 3,
			StepSize:       4,
			InitAngle:      math.Pi / 3,
		},
	},
	"barnsley": {
		Name:        "barnsley",
		Description: "Barnsley fern",
		Axiom:       "-X",
		Rules: map[string]string{
			"X": "F+[[X]-X]-F[-FX]+X",
			"F": "FF",
		},
		Params: compiler.Params{
			Iterations:     7,
			AngleIncrement: geom.DegToRad(25),
			StepSize:       0.5,
			InitAngle:      math.Pi/2 - 0.1,
		},
	},
}

// Get returns the preset with the given name.
func Get(name string) (Figure, error) {
	figure, ok := presets[name]
	if !ok {
		return Figure{}, fmt.Errorf("unknown figure: %s (known: %v)", name, Names())
	}
	return figure, nil
}

// Names returns all preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all presets, sorted by name.
func All() []Figure {
	all := make([]Figure, 0, len(presets))
	for _, name := range Names() {
		all = append(all, presets[name])
	}
	return all
}
