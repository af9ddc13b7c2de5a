package gcode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Word is a letter plus a number, eg X1.50 or G01.
type Word struct {
	Letter rune
	Number float64
}

func (w Word) String() string {
	return fmt.Sprintf("%c%v", w.Letter, w.Number)
}

// Block is one parsed program line: either a comment or a sequence of words.
type Block struct {
	comment *string
	words   []Word
}

// IsComment returns true for ; comment lines.
func (b *Block) IsComment() bool {
	return b.comment != nil
}

// Comment returns the comment text, without the leading ; marker.
func (b *Block) Comment() string {
	if b.comment == nil {
		return ""
	}
	return *b.comment
}

// Words returns the words of a command block.
func (b *Block) Words() []Word {
	return b.words
}

// Command returns the first G/M word of the block, if any.
func (b *Block) Command() (Word, bool) {
	for _, w := range b.words {
		if w.Letter == 'G' || w.Letter == 'M' {
			return w, true
		}
	}
	return Word{}, false
}

// Argument returns the number of the first word with the given letter, or nil if absent.
func (b *Block) Argument(letter rune) *float64 {
	for _, w := range b.words {
		if w.Letter == letter {
			n := w.Number
			return &n
		}
	}
	return nil
}

// Parser reads emitted machine programs back, line by line. It only understands the profile this
// package emits: ; comments and space-separated letter+number words.
type Parser struct {
	scanner *bufio.Scanner
	line    uint
}

// NewParser creates a Parser reading from rd.
func NewParser(rd io.Reader) *Parser {
	return &Parser{scanner: bufio.NewScanner(rd)}
}

// Next returns the next non-empty block, or nil at end of input.
func (p *Parser) Next() (*Block, error) {
	for p.scanner.Scan() {
		p.line++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			comment := strings.TrimSpace(strings.TrimPrefix(line, ";"))
			return &Block{comment: &comment}, nil
		}
		block := &Block{}
		for field := range strings.FieldsSeq(line) {
			letter := rune(field[0])
			if !unicode.IsLetter(letter) {
				return nil, fmt.Errorf("line %d: word %q: expected letter", p.line, field)
			}
			number, err := strconv.ParseFloat(field[1:], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: word %q: %w", p.line, field, err)
			}
			block.words = append(block.words, Word{
				Letter: unicode.ToUpper(letter), Number: number,
			})
		}
		return block, nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
