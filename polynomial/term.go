package polynomial

import "fmt"

// Term is a single monomial Coefficient * x^Exponent.
type Term struct {
	Coefficient float64
	Exponent    int
}

// DerivativeOrder names which derivative of a polynomial a constraint pins down.
type DerivativeOrder int

// The derivative orders a constraint may target.
const (
	Position DerivativeOrder = iota
	Velocity
	Acceleration
)

// Valid reports whether the order is one a constraint can be fitted against.
func (o DerivativeOrder) Valid() bool {
	switch o {
	case Position, Velocity, Acceleration:
		return true
	default:
		return false
	}
}

func (o DerivativeOrder) String() string {
	switch o {
	case Position:
		return "position"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	default:
		return fmt.Sprintf("derivative(%d)", int(o))
	}
}

// Constraint requires the Order-th derivative of a polynomial to equal Value at Time.
type Constraint struct {
	Time  float64
	Value float64
	Order DerivativeOrder
}

// Differentiate returns the derivative of the given terms. Each term keeps its slot: its
// coefficient is multiplied by its exponent and the exponent drops by one. A term that would end up
// with a negative exponent becomes the zero term (0, 0).
func Differentiate(terms []Term) []Term {
	out := make([]Term, len(terms))
	for k, term := range terms {
		exp := term.Exponent - 1
		if exp < 0 {
			out[k] = Term{}
			continue
		}
		out[k] = Term{Coefficient: term.Coefficient * float64(term.Exponent), Exponent: exp}
	}
	return out
}

// monomialBasis returns (1, k) for k in [0, order].
func monomialBasis(order int) []Term {
	basis := make([]Term, order+1)
	for k := range basis {
		basis[k] = Term{Coefficient: 1, Exponent: k}
	}
	return basis
}

// evalTerms evaluates the sum of the terms at x and, when row is non-nil, stores each term's
// contribution in it.
func evalTerms(terms []Term, x float64, row []float64) float64 {
	var sum float64
	for k, term := range terms {
		v := term.Coefficient * pow(x, term.Exponent)
		if row != nil {
			row[k] = v
		}
		sum += v
	}
	return sum
}

// pow is x^n for non-negative integer n, with 0^0 = 1.
func pow(x float64, n int) float64 {
	result := 1.0
	for ; n > 0; n-- {
		result *= x
	}
	return result
}
