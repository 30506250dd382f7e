// Package polynomial fits single-variable polynomials to position, velocity and acceleration
// constraints and stitches them into piecewise trajectories.
package polynomial

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Evaluator is anything that can be queried for a value, or one of its derivatives, at time t.
type Evaluator interface {
	Eval(t float64) (float64, error)
	EvalDerivative(t float64, n int) (float64, error)
}

// Polynomial is a single-variable polynomial over a monomial basis. It starts out unfitted,
// collecting constraints, and becomes immutable once Fit succeeds.
type Polynomial struct {
	constraints []Constraint
	terms       []Term
	fitted      bool
	cond        float64
}

// New returns an unfitted polynomial with no constraints.
func New() *Polynomial {
	return &Polynomial{}
}

// NewFromTerms returns a polynomial that is already fitted with the given terms.
func NewFromTerms(terms []Term) (*Polynomial, error) {
	if len(terms) == 0 {
		return nil, errors.New("cannot build a polynomial from an empty term table")
	}
	for i, term := range terms {
		if term.Exponent < 0 {
			return nil, errors.Errorf("term %d has negative exponent %d", i, term.Exponent)
		}
	}
	return &Polynomial{terms: append([]Term(nil), terms...), fitted: true, cond: 1}, nil
}

// NewConstant returns a fitted polynomial that evaluates to v everywhere.
func NewConstant(v float64) *Polynomial {
	return &Polynomial{terms: []Term{{Coefficient: v}}, fitted: true, cond: 1}
}

// SetConstraints appends one constraint per (times[i], values[i], orders[i]) triple, then fixes
// the order of the polynomial at the total number of constraints minus one.
func (p *Polynomial) SetConstraints(times, values []float64, orders []DerivativeOrder) error {
	if len(times) != len(values) || len(times) != len(orders) {
		return errors.Errorf("constraint slices differ in length: %d times, %d values, %d orders",
			len(times), len(values), len(orders))
	}
	cs := make([]Constraint, len(times))
	for i := range times {
		cs[i] = Constraint{Time: times[i], Value: values[i], Order: orders[i]}
	}
	return p.AddConstraints(cs...)
}

// AddConstraints is SetConstraints for callers that already hold Constraint values.
func (p *Polynomial) AddConstraints(cs ...Constraint) error {
	if p.fitted {
		return ErrAlreadyFitted
	}
	p.constraints = append(p.constraints, cs...)
	if len(p.constraints) > 0 {
		p.terms = monomialBasis(len(p.constraints) - 1)
	}
	return nil
}

// Order returns the degree of the basis, or -1 if the polynomial has no terms yet.
func (p *Polynomial) Order() int {
	return len(p.terms) - 1
}

// Fitted reports whether the polynomial has coefficients.
func (p *Polynomial) Fitted() bool {
	return p.fitted
}

// Terms returns a copy of the polynomial's terms.
func (p *Polynomial) Terms() []Term {
	return append([]Term(nil), p.terms...)
}

// Constraints returns a copy of the registered constraints.
func (p *Polynomial) Constraints() []Constraint {
	return append([]Constraint(nil), p.constraints...)
}

// Condition returns the condition number of the last successful fit. Polynomials built directly
// from terms report 1.
func (p *Polynomial) Condition() float64 {
	return p.cond
}

// Differentiate returns the derivative of the polynomial's current terms.
func (p *Polynomial) Differentiate() []Term {
	return Differentiate(p.terms)
}

// Fit solves for the coefficients that satisfy every registered constraint. Row i of the square
// system evaluates the basis, differentiated Order times, at constraint i's time. On error the
// polynomial is left unfitted.
func (p *Polynomial) Fit() error {
	if p.fitted {
		return nil
	}
	if len(p.constraints) == 0 {
		return ErrMissingConstraints
	}

	n := len(p.constraints)
	basis := monomialBasis(n - 1)
	velocity := Differentiate(basis)
	acceleration := Differentiate(velocity)

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	row := make([]float64, n)
	for i, c := range p.constraints {
		var rowBasis []Term
		switch c.Order {
		case Position:
			rowBasis = basis
		case Velocity:
			rowBasis = velocity
		case Acceleration:
			rowBasis = acceleration
		default:
			return NewInvalidConstraintError(i, c.Order)
		}
		evalTerms(rowBasis, c.Time, row)
		a.SetRow(i, row)
		b.SetVec(i, c.Value)
	}

	coeffs, cond, err := solve(a, b)
	if err != nil {
		return err
	}

	terms := make([]Term, n)
	for k := range terms {
		terms[k] = Term{Coefficient: coeffs.AtVec(k), Exponent: basis[k].Exponent}
	}
	p.terms = terms
	p.cond = cond
	p.fitted = true
	return nil
}

// solve returns x with a*x = b. Only an exactly singular factorization is an error; an
// ill-conditioned but invertible system still yields a solution along with its condition number.
func solve(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, float64, error) {
	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if math.IsInf(cond, 1) || math.IsNaN(cond) || lu.Det() == 0 {
		return nil, cond, NewSingularSystemError(cond)
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		var condErr mat.Condition
		if !errors.As(err, &condErr) {
			return nil, cond, errors.Wrap(err, "solving constraint system")
		}
	}
	return &x, cond, nil
}

// Eval returns the value of the polynomial at x.
func (p *Polynomial) Eval(x float64) (float64, error) {
	if !p.fitted {
		return 0, ErrNotFitted
	}
	return evalTerms(p.terms, x, nil), nil
}

// EvalDerivative returns the n-th derivative of the polynomial at x.
func (p *Polynomial) EvalDerivative(x float64, n int) (float64, error) {
	if !p.fitted {
		return 0, ErrNotFitted
	}
	if n < 0 {
		return 0, errors.Errorf("cannot take derivative of negative order %d", n)
	}
	terms := p.terms
	for i := 0; i < n; i++ {
		terms = Differentiate(terms)
	}
	return evalTerms(terms, x, nil), nil
}
