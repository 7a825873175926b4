// Package analysis provides frequency analysis of stored trajectories.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data via radix-2
// Cooley-Tukey. The length must be a power of two; Pad truncates to one.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// Pad truncates data to the largest power-of-two length it contains.
func Pad(data []float64) []float64 {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	return data[:n]
}

// DominantPeriod estimates the strongest periodic component of a uniformly
// sampled series, in the units of sampleInterval. It returns 0 when the
// series is too short or has no oscillatory content.
func DominantPeriod(series []float64, sampleInterval float64) float64 {
	data := Pad(series)
	n := len(data)
	if n < 4 || sampleInterval <= 0 {
		return 0
	}

	// remove the mean so the DC bin does not dominate
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := FFT(centered)

	best := 0
	bestPower := 0.0
	for k := 1; k <= n/2; k++ {
		power := cmplx.Abs(spectrum[k])
		if power > bestPower {
			bestPower = power
			best = k
		}
	}

	if best == 0 || bestPower == 0 {
		return 0
	}
	return float64(n) * sampleInterval / float64(best)
}
