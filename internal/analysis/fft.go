// Package analysis provides frequency analysis of recorded state series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series whose length
// is a power of two (see Pad), by radix-2 decimation.
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

// Pad returns the series zero-padded to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of each frequency bin up to the
// Nyquist limit for a power-of-two-length series.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the strongest nonzero frequency in hertz for a
// series sampled over the given total duration in seconds. The DC bin is
// ignored. Returns 0 when the series is too short to carry a peak.
func DominantFrequency(data []float64, duration float64) float64 {
	if duration <= 0 || len(data) < 2 {
		return 0
	}

	ps := PowerSpectrum(Pad(data))
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	return float64(maxIdx) / duration
}
