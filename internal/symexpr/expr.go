// Package symexpr implements the symbolic phase ring used for gate
// angles: exact rational constants plus rational multiples of free
// symbols. Angles are expressed in half-turns throughout.
package symexpr

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Expr is a symbolic real value of the form c + sum(k_i * s_i) where c
// and every k_i are exact rationals and every s_i is a named symbol.
// The zero value of Expr is the number 0. Expr values are immutable;
// all operations return new values.
type Expr struct {
	c     *big.Rat
	terms map[string]*big.Rat
}

// Zero returns the expression 0.
func Zero() Expr {
	return Expr{}
}

// FromRat returns a constant expression with the given rational value.
func FromRat(r *big.Rat) Expr {
	if r == nil || r.Sign() == 0 {
		return Expr{}
	}
	return Expr{c: new(big.Rat).Set(r)}
}

// FromInt returns a constant integer expression.
func FromInt(n int64) Expr {
	return FromRat(big.NewRat(n, 1))
}

// FromFloat returns a constant expression. The float is converted
// exactly, so callers should stick to dyadic values such as 0.5.
func FromFloat(f float64) Expr {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		panic(fmt.Sprintf("symexpr: cannot represent %v", f))
	}
	return FromRat(r)
}

// Symbol returns the expression consisting of the single free symbol s.
func Symbol(s string) Expr {
	return Expr{terms: map[string]*big.Rat{s: big.NewRat(1, 1)}}
}

func (e Expr) constant() *big.Rat {
	if e.c == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(e.c)
}

// IsZero reports whether the expression is identically 0.
func (e Expr) IsZero() bool {
	return (e.c == nil || e.c.Sign() == 0) && len(e.terms) == 0
}

// IsConstant reports whether the expression has no free symbols.
func (e Expr) IsConstant() bool {
	return len(e.terms) == 0
}

// Constant returns the constant part of the expression.
func (e Expr) Constant() *big.Rat {
	return e.constant()
}

// FreeSymbols returns the sorted names of the free symbols in e.
func (e Expr) FreeSymbols() []string {
	if len(e.terms) == 0 {
		return nil
	}
	syms := make([]string, 0, len(e.terms))
	for s := range e.terms {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	c := e.constant()
	c.Add(c, o.constant())
	terms := make(map[string]*big.Rat)
	for s, k := range e.terms {
		terms[s] = new(big.Rat).Set(k)
	}
	for s, k := range o.terms {
		if prev, ok := terms[s]; ok {
			prev.Add(prev, k)
		} else {
			terms[s] = new(big.Rat).Set(k)
		}
	}
	return normalize(c, terms)
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return e.ScaleRat(big.NewRat(-1, 1))
}

// ScaleRat returns e multiplied by the rational r.
func (e Expr) ScaleRat(r *big.Rat) Expr {
	if r.Sign() == 0 {
		return Expr{}
	}
	c := e.constant()
	c.Mul(c, r)
	terms := make(map[string]*big.Rat, len(e.terms))
	for s, k := range e.terms {
		terms[s] = new(big.Rat).Mul(k, r)
	}
	return normalize(c, terms)
}

// ScaleInt returns e multiplied by the integer n.
func (e Expr) ScaleInt(n int64) Expr {
	return e.ScaleRat(big.NewRat(n, 1))
}

// Substitute replaces free symbols according to sub and returns the
// resulting expression. Symbols absent from sub are left free.
func (e Expr) Substitute(sub map[string]Expr) Expr {
	out := FromRat(e.constant())
	for s, k := range e.terms {
		if repl, ok := sub[s]; ok {
			out = out.Add(repl.ScaleRat(k))
		} else {
			out = out.Add(Symbol(s).ScaleRat(k))
		}
	}
	return out
}

// Equal reports structural equality of the two expressions.
func (e Expr) Equal(o Expr) bool {
	return e.Sub(o).IsZero()
}

// EquivMod reports whether e - o is an integer multiple of n. If the
// difference still contains free symbols it cannot be reduced to such a
// multiple and the result is false.
func (e Expr) EquivMod(o Expr, n int64) bool {
	return e.Sub(o).EquivZeroMod(n)
}

// EquivZeroMod reports whether e is an integer multiple of n.
func (e Expr) EquivZeroMod(n int64) bool {
	if len(e.terms) != 0 {
		return false
	}
	q := e.constant()
	q.Quo(q, big.NewRat(n, 1))
	return q.IsInt()
}

// String renders the canonical form: symbol terms in name order, then
// the constant, joined with " + " (negative terms render as "- x").
func (e Expr) String() string {
	var parts []string
	for _, s := range e.FreeSymbols() {
		k := e.terms[s]
		switch {
		case k.Cmp(big.NewRat(1, 1)) == 0:
			parts = append(parts, s)
		case k.Cmp(big.NewRat(-1, 1)) == 0:
			parts = append(parts, "-"+s)
		default:
			parts = append(parts, k.RatString()+"*"+s)
		}
	}
	if e.c != nil && e.c.Sign() != 0 {
		parts = append(parts, e.c.RatString())
	}
	if len(parts) == 0 {
		return "0"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		if strings.HasPrefix(p, "-") {
			out += " - " + p[1:]
		} else {
			out += " + " + p
		}
	}
	return out
}

func normalize(c *big.Rat, terms map[string]*big.Rat) Expr {
	for s, k := range terms {
		if k.Sign() == 0 {
			delete(terms, s)
		}
	}
	if len(terms) == 0 {
		terms = nil
	}
	if c.Sign() == 0 {
		c = nil
	}
	return Expr{c: c, terms: terms}
}
