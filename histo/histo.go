// Package histo builds histograms of the values of volumetric grids. They
// are used to get an idea of the distribution of a field before choosing
// isosurface levels.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rmera/orbitraj"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// MarshalJSON encodes the histogram with its dividers and counts.
func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

// ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

// String returns a representation of the histogram, one line per bin.
func (D *Data) String() string {
	ret := make([]string, 0, len(D.histo)+1)
	ret = append(ret, fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d", D.id, D.normalized, D.total))
	for i, v := range D.histo {
		ret = append(ret, fmt.Sprintf("%11.4g %11.4g %9.3f", D.dividers[i], D.dividers[i+1], v))
	}
	return strings.Join(ret, "\n")
}

// Dividers returns the n+1 dividers of n bins of the same width spanning r. The last
// divider is nudged up so the values equal to r.Hi fall in the last bin.
func Dividers(r orbitraj.ValueRange, n int) []float64 {
	if n < 1 {
		n = 1
	}
	r = r.Clamped()
	hi := r.Hi
	if hi <= r.Lo {
		hi = r.Lo + 1
	}
	d := floats.Span(make([]float64, n+1), r.Lo, hi)
	d[n] = math.Nextafter(hi, math.Inf(1))
	return d
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil, in which case an empty histogram is created, and
// it is not modified. If an ID for the histogram is given, it will be set.
// If not, the ID will be set to -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

// FromValues returns a histogram of values with n bins spanning their range.
// NaN values are ignored.
func FromValues(values []float64, n int, ID ...int) *Data {
	clean := defined(values)
	r := orbitraj.UndefinedRange()
	if len(clean) > 0 {
		r = orbitraj.ValueRange{Lo: floats.Min(clean), Hi: floats.Max(clean)}
	}
	return NewData(Dividers(r, n), clean, ID...)
}

func defined(values []float64) []float64 {
	ret := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// AddData adds the given data point(s) to the histogram. Values outside the
// dividers are omitted, but counted in the total.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		j := sort.SearchFloat64s(D.dividers, v)
		//j is the first divider >= v
		if j < len(D.dividers) && D.dividers[j] == v {
			j++
		}
		if j == 0 || j == len(D.dividers) {
			continue
		}
		D.histo[j-1]++
	}
	D.total += len(point)
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the counts (or frequencies, if normalized) of each bin. Changes
// to the slice change the histogram.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Mode returns the center of the most populated bin.
func (D *Data) Mode() float64 {
	i := floats.MaxIdx(D.histo)
	return (D.dividers[i] + D.dividers[i+1]) / 2
}

// ReHisto replaces the histogram with one of rawdata over dividers.
// rawdata is not modified.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	sorted := append([]float64(nil), rawdata...)
	sort.Float64s(sorted)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(sorted, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(sorted, dividers[0])
	sorted = sorted[mini:maxi]
	D.dividers = append(D.dividers[:0], dividers...)
	D.total = len(sorted)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, sorted, nil)
}

// SuggestLevel returns the value below which the given fraction of values fall.
// NaN values are ignored. It returns NaN if there are no values.
func SuggestLevel(values []float64, fraction float64) float64 {
	clean := defined(values)
	if len(clean) == 0 {
		return math.NaN()
	}
	fraction = math.Max(0, math.Min(1, fraction))
	sort.Float64s(clean)
	return stat.Quantile(fraction, stat.Empirical, clean, nil)
}
