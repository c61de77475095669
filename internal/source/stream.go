// Package source splits assembly source text into normalized tokens.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/retroenv/tpasm/internal/asmerr"
)

// Stream produces the tokens of a source, line by line.
type Stream struct {
	scanner *bufio.Scanner
	line    int

	pending []Token // unread tokens of the current line
	current Token

	previous    Token
	hasPrevious bool
	firstOnLine bool

	unread    Token
	hasUnread bool
}

// New returns a stream reading from r.
func New(r io.Reader) *Stream {
	return &Stream{
		scanner: bufio.NewScanner(r),
	}
}

// Next returns the next token. It returns false once the input is exhausted.
func (s *Stream) Next() (Token, bool, error) {
	if s.hasUnread {
		s.hasUnread = false
		s.current = s.unread
		s.hasPrevious = false
		s.firstOnLine = true
		return s.current, true, nil
	}

	if len(s.pending) > 0 {
		s.previous = s.current
		s.hasPrevious = true
		s.current = s.pending[0]
		s.pending = s.pending[1:]
		s.firstOnLine = false
		return s.current, true, nil
	}

	for s.scanner.Scan() {
		s.line++
		s.pending = s.split(s.scanner.Text())
		if len(s.pending) == 0 {
			continue
		}

		s.current = s.pending[0]
		s.pending = s.pending[1:]
		s.hasPrevious = false
		s.firstOnLine = true
		return s.current, true, nil
	}

	if err := s.scanner.Err(); err != nil {
		return Token{}, false, asmerr.New(asmerr.ErrIOFailure, "", s.line).Wrap(err)
	}
	return Token{}, false, nil
}

// FirstOnLine returns whether the token last returned by Next is the
// first one of its line.
func (s *Stream) FirstOnLine() bool {
	return s.firstOnLine
}

// Previous returns the token read before the current one on the same line.
func (s *Stream) Previous() (Token, bool) {
	return s.previous, s.hasPrevious
}

// Line returns the number of the last line read.
func (s *Stream) Line() int {
	return s.line
}

// Unread queues tok to be returned by the next call to Next, which will
// report it as first on its line. Only one token can be unread at a time.
func (s *Stream) Unread(tok Token) {
	s.unread = tok
	s.hasUnread = true
}

func (s *Stream) split(line string) []Token {
	fields := strings.Fields(line)
	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		word := normalize(field)
		if word == "" {
			continue
		}
		tokens = append(tokens, Token{Text: word, Line: s.line})
	}
	return tokens
}
