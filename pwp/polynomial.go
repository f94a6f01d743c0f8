package pwp

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

// Polynomial is a degree-≤2 real polynomial a·x² + b·x + c, or a distinguished
// Undefined value representing "no information" over a region. Undefined is
// modeled as its own variant (not a nullable coefficient): arithmetic with an
// Undefined operand yields Undefined, and its Zeros are always empty.
type Polynomial struct {
	a, b, c   float64
	undefined bool
}

// Constant returns the degree-0 polynomial f(x) = c.
func Constant(c float64) Polynomial {
	return Polynomial{c: c}
}

// Linear returns the polynomial f(x) = m·x + q.
func Linear(m, q float64) Polynomial {
	return Polynomial{b: m, c: q}
}

// Full returns the general degree-≤2 polynomial f(x) = a·x² + b·x + c.
func Full(a, b, c float64) Polynomial {
	return Polynomial{a: a, b: b, c: c}
}

// UndefinedPolynomial returns the distinguished "no information" value.
func UndefinedPolynomial() Polynomial {
	return Polynomial{undefined: true}
}

// IsUndefined reports whether p is the Undefined variant.
func (p Polynomial) IsUndefined() bool {
	return p.undefined
}

// Degree returns 0, 1, or 2 for a defined polynomial, or -1 if undefined.
// Degree is derived from the coefficients rather than from which constructor
// built the value, so arithmetic results classify themselves correctly (e.g.
// subtracting two linear polynomials with equal slopes yields a degree-0
// result).
func (p Polynomial) Degree() int {
	if p.undefined {
		return -1
	}
	if math.Abs(p.a) > EPS {
		return 2
	}
	if math.Abs(p.b) > EPS {
		return 1
	}
	return 0
}

// Eval evaluates the polynomial at x. Evaluating Undefined returns NaN (so
// Signal.Points reports NaN values for an undefined interval).
func (p Polynomial) Eval(x float64) float64 {
	if p.undefined {
		return math.NaN()
	}
	return p.a*x*x + p.b*x + p.c
}

// Add returns p+q. Undefined propagates: if either operand is undefined the
// result is undefined.
func (p Polynomial) Add(q Polynomial) Polynomial {
	if p.undefined || q.undefined {
		return UndefinedPolynomial()
	}
	return Full(p.a+q.a, p.b+q.b, p.c+q.c)
}

// Sub returns p-q, with the same undefined-propagation rule as Add.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	if p.undefined || q.undefined {
		return UndefinedPolynomial()
	}
	return Full(p.a-q.a, p.b-q.b, p.c-q.c)
}

// MultByConst returns k·p.
func (p Polynomial) MultByConst(k float64) Polynomial {
	if p.undefined {
		return UndefinedPolynomial()
	}
	return Full(p.a*k, p.b*k, p.c*k)
}

// AddToX returns the polynomial q such that q(x) = p(x+delta) for all x —
// i.e. p shifted by delta along its domain. Used by Interval.Shift and
// Interval.MoveAbove to carry a polynomial's values across a domain
// translation.
func (p Polynomial) AddToX(delta float64) Polynomial {
	if p.undefined {
		return UndefinedPolynomial()
	}
	return Full(p.a, 2*p.a*delta+p.b, p.a*delta*delta+p.b*delta+p.c)
}

// Integral returns the antiderivative F with F(0) implicitly 0 (callers
// anchor it further, see Interval.Integral). Integrating a degree-2
// polynomial would require a degree-3 representation this algebra does not
// support, so it fails with ErrInvalidDegree; well-formed graphs never feed
// a quadratic interval into a window Integral operator.
func (p Polynomial) Integral() (Polynomial, error) {
	if p.undefined {
		return UndefinedPolynomial(), nil
	}
	if p.Degree() == 2 {
		return Polynomial{}, ErrInvalidDegree
	}
	return Full(p.b/2, p.c, 0), nil
}

// Zeros returns the real roots of p, 0, 1, or 2 of them in ascending order.
// A degree-0 polynomial (constant, zero or not) has no isolated zeros by
// policy. Undefined has no zeros.
func (p Polynomial) Zeros() []float64 {
	if p.undefined {
		return nil
	}
	switch p.Degree() {
	case 0:
		return nil
	case 1:
		return []float64{-p.c / p.b}
	default:
		disc := p.b*p.b - 4*p.a*p.c
		switch {
		case disc < -EPS:
			return nil
		case disc <= EPS:
			return []float64{-p.b / (2 * p.a)}
		default:
			sq := math.Sqrt(disc)
			roots := []float64{(-p.b - sq) / (2 * p.a), (-p.b + sq) / (2 * p.a)}
			sort.Float64s(roots)
			return roots
		}
	}
}

// Equal reports whether p and q coincide within EPS on every coefficient,
// with matching undefined-ness.
func (p Polynomial) Equal(q Polynomial) bool {
	if p.undefined != q.undefined {
		return false
	}
	if p.undefined {
		return true
	}
	return scalar.EqualWithinAbs(p.a, q.a, EPS) &&
		scalar.EqualWithinAbs(p.b, q.b, EPS) &&
		scalar.EqualWithinAbs(p.c, q.c, EPS)
}

func (p Polynomial) String() string {
	if p.undefined {
		return "undefined"
	}
	return fmt.Sprintf("%gx^2 + %gx + %g", p.a, p.b, p.c)
}

func nearlyEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, EPS)
}
