package symexpr

import (
	"fmt"
	"math/big"
	"strings"
)

// Parse reads an expression in the canonical form produced by String:
// a sum of terms, each a rational ("1/2", "0.25", "-3"), a symbol
// ("alpha"), or a rational-symbol product ("3/2*alpha").
func Parse(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Expr{}, fmt.Errorf("symexpr: empty expression")
	}
	out := Zero()
	rest := s
	sign := int64(1)
	for rest != "" {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}
		switch rest[0] {
		case '+':
			sign = 1
			rest = rest[1:]
			continue
		case '-':
			sign = -1
			rest = rest[1:]
			continue
		}
		end := strings.IndexAny(rest, "+-")
		var tok string
		if end == -1 {
			tok = rest
			rest = ""
		} else {
			tok = rest[:end]
			rest = rest[end:]
		}
		term, err := parseTerm(strings.TrimSpace(tok))
		if err != nil {
			return Expr{}, err
		}
		out = out.Add(term.ScaleInt(sign))
		sign = 1
	}
	return out, nil
}

func parseTerm(tok string) (Expr, error) {
	if tok == "" {
		return Expr{}, fmt.Errorf("symexpr: empty term")
	}
	if i := strings.Index(tok, "*"); i >= 0 {
		coeff, err := parseRat(strings.TrimSpace(tok[:i]))
		if err != nil {
			return Expr{}, err
		}
		sym := strings.TrimSpace(tok[i+1:])
		if !validSymbol(sym) {
			return Expr{}, fmt.Errorf("symexpr: invalid symbol %q", sym)
		}
		return Symbol(sym).ScaleRat(coeff), nil
	}
	if validSymbol(tok) {
		return Symbol(tok), nil
	}
	r, err := parseRat(tok)
	if err != nil {
		return Expr{}, err
	}
	return FromRat(r), nil
}

func parseRat(tok string) (*big.Rat, error) {
	r := new(big.Rat)
	if _, ok := r.SetString(tok); !ok {
		return nil, fmt.Errorf("symexpr: invalid rational %q", tok)
	}
	return r, nil
}

func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
