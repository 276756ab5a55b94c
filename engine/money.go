package engine

import "github.com/shopspring/decimal"

// Monetary and weight arithmetic goes through decimals so repeated
// recomputation stays stable regardless of accumulation order.

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}

// mul2 is quantity × unit value rounded to 2 decimals.
func mul2(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// withinTolerance reports |a-b| <= tol.
func withinTolerance(a, b, tol float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(tol))
}

// diff2 is |a-b| rounded to 2 decimals, for violation messages.
func diff2(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs().Round(2).Float64()
	return f
}
