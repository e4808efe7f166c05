package propagation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Measurement errors.
var (
	ErrTooFewSamples = errors.New("propagation: at least two samples are required")
	ErrInvalidSample = errors.New("propagation: sample is not finite")
)

// Measurement summarises repeated readings of one quantity. StdErr is the
// standard error of the mean and is the uncertainty to bind as d<name>.
type Measurement struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	StdErr float64 `json:"stderr"`
}

// Measure computes the mean, unbiased standard deviation and standard error
// of samples.
func Measure(samples []float64) (Measurement, error) {
	if len(samples) < 2 {
		return Measurement{}, fmt.Errorf("measure %d samples: %w", len(samples), ErrTooFewSamples)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Measurement{}, fmt.Errorf("measure: sample %d: %w", i, ErrInvalidSample)
		}
	}
	mean, std := stat.MeanStdDev(samples, nil)
	return Measurement{
		N:      len(samples),
		Mean:   mean,
		StdDev: std,
		StdErr: std / math.Sqrt(float64(len(samples))),
	}, nil
}

// Bind returns the value mapping {name: mean, d<name>: stderr}.
func (m Measurement) Bind(name string) map[string]float64 {
	return map[string]float64{name: m.Mean, ErrorSymbol(name): m.StdErr}
}
