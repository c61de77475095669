package source

import "github.com/retroenv/tpasm/internal/asmerr"

// Operand returns the token following a directive. Running out of input is
// an ErrUnexpectedEndOfInput error.
func (s *Stream) Operand(directive Token) (Token, error) {
	tok, ok, err := s.Next()
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, asmerr.New(asmerr.ErrUnexpectedEndOfInput, directive.Text, directive.Line).
			WithDirective(directive.Text)
	}
	return tok, nil
}

// SkipLiterals discards literal definitions that follow a pool directive.
// The first other token is unread, so that scanning resumes as if it
// started a line.
func (s *Stream) SkipLiterals() error {
	for {
		tok, ok, err := s.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if IsLiteralStart(tok.Text) {
			continue
		}
		s.Unread(tok)
		return nil
	}
}
