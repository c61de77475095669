package source

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the lexical kind of a token that is not a catalog mnemonic.
type Kind uint8

// token kinds.
const (
	Unknown Kind = iota
	Symbol
	Literal
	Constant
	MalformedLiteral // starts with =' but is not closed
)

const literalPrefix = "='"

// Token is a normalized source word.
type Token struct {
	Text string
	Line int // 1-based source line
}

// Kind returns the lexical kind of the token.
func (t Token) Kind() Kind {
	return Classify(t.Text)
}

func (t Token) String() string {
	return t.Text
}

// Classify returns the lexical kind of a word.
func Classify(word string) Kind {
	if word == "" {
		return Unknown
	}
	if strings.HasPrefix(word, literalPrefix) {
		if len(word) > len(literalPrefix) && strings.HasSuffix(word, "'") {
			return Literal
		}
		return MalformedLiteral
	}

	r, _ := utf8.DecodeRuneInString(word)
	if unicode.IsLetter(r) || r == '_' {
		return Symbol
	}
	if IsConstant(word) {
		return Constant
	}
	return Unknown
}

// IsLiteralStart returns whether the word begins a literal definition,
// closed or not.
func IsLiteralStart(word string) bool {
	return strings.HasPrefix(word, literalPrefix)
}

// IsConstant returns whether the word is a non-empty sequence of decimal digits.
func IsConstant(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalize strips a single trailing comma.
func normalize(word string) string {
	return strings.TrimSuffix(word, ",")
}
