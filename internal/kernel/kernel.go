// Package kernel generates the memory-kernel weights of the fractional
// schemes. Per-step weights are closed-form power differences; the
// Grünwald–Letnikov table is built once by recurrence.
//
// All weights are float64. Solvers cast them to the state dtype.
package kernel

import (
	"math"
)

// AdamsBashforth returns the predictor weights b_{j,k} for j = lo..k:
//
//	b_{j,k} = (h^β/β) [(k+1-j)^β - (k-j)^β]
//
// w[i] is the weight of history slot lo+i.
func AdamsBashforth(k, lo int, beta, h float64) []float64 {
	scale := math.Pow(h, beta) / beta
	w := make([]float64, k-lo+1)
	for j := lo; j <= k; j++ {
		w[j-lo] = scale * (math.Pow(float64(k+1-j), beta) - math.Pow(float64(k-j), beta))
	}
	return w
}

// CorrectorScale returns a = h^β / (β(β+1)), the common factor of the
// Adams–Moulton weights and the coefficient of the predicted term.
func CorrectorScale(beta, h float64) float64 {
	return math.Pow(h, beta) / (beta * (beta + 1))
}

// AdamsMoulton returns the corrector weights a_{j,k} for j = 0..k:
//
//	a_{0,k} = a [k^{β+1} - (k-β)(k+1)^β]
//	a_{j,k} = a [(k+2-j)^{β+1} + (k-j)^{β+1} - 2(k+1-j)^{β+1}],  1 <= j <= k
func AdamsMoulton(k int, beta, h float64) []float64 {
	a := CorrectorScale(beta, h)
	kf := float64(k)

	w := make([]float64, k+1)
	w[0] = a * (math.Pow(kf, beta+1) - (kf-beta)*math.Pow(kf+1, beta))
	for j := 1; j <= k; j++ {
		w[j] = a * (math.Pow(float64(k+2-j), beta+1) +
			math.Pow(float64(k-j), beta+1) -
			2*math.Pow(float64(k+1-j), beta+1))
	}
	return w
}

// L1Scale returns u_h = h^β Γ(2-β).
func L1Scale(beta, h float64) float64 {
	return math.Pow(h, beta) * math.Gamma(2-beta)
}

// L1 returns the increment weights R_{k,j} = (k-j)^{1-β} - (k-j-1)^{1-β}
// for j = 0..k-3. The result is empty for k <= 2.
func L1(k int, beta float64) []float64 {
	if k < 3 {
		return nil
	}
	w := make([]float64, k-2)
	for j := range w {
		w[j] = math.Pow(float64(k-j), 1-beta) - math.Pow(float64(k-j-1), 1-beta)
	}
	return w
}

// GrunwaldLetnikov returns c_0..c_n with c_0 = 1 and
// c_j = (1 - (1+β)/j) c_{j-1}.
func GrunwaldLetnikov(n int, beta float64) []float64 {
	c := make([]float64, n+1)
	c[0] = 1
	for j := 1; j <= n; j++ {
		c[j] = (1 - (1+beta)/float64(j)) * c[j-1]
	}
	return c
}

// RLCoeff returns the product trapezoidal weight of y_j at step k:
//
//	RL(k, 0) = (k-1)^{1-β} - (k+β-1) k^{-β}
//	RL(k, k) = 1
//	RL(k, j) = (k-j+1)^{1-β} + (k-j-1)^{1-β} - 2(k-j)^{1-β}
func RLCoeff(k, j int, beta float64) float64 {
	switch {
	case j == 0:
		kf := float64(k)
		return math.Pow(kf-1, 1-beta) - (kf+beta-1)*math.Pow(kf, -beta)
	case j == k:
		return 1
	default:
		d := float64(k - j)
		return math.Pow(d+1, 1-beta) + math.Pow(d-1, 1-beta) - 2*math.Pow(d, 1-beta)
	}
}

// RLCoeffs returns RL(k, j) for j = 0..k-1.
func RLCoeffs(k int, beta float64) []float64 {
	w := make([]float64, k)
	for j := range w {
		w[j] = RLCoeff(k, j, beta)
	}
	return w
}
