package unitconv

import (
	"slices"
	"strings"
)

// A Pair is an ordered (from, to) pair of lower-case unit codes, e.g.
// {"m", "cm"}. Each pair describes exactly one unidirectional conversion;
// the reverse direction is a separate entry.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// String returns the pair formatted as "from -> to".
func (p Pair) String() string {
	return p.From + " -> " + p.To
}

// factors maps a unit pair to the scalar multiplier that converts a value
// of the From unit into the To unit. Only the listed pairs are convertible;
// no chaining through intermediate units is performed, so e.g. "ly" -> "m"
// is not supported even though "ly" -> "km" and "km" -> "m" both are.
var factors = map[Pair]float64{
	// Length
	{"m", "cm"}: 100.0, {"cm", "m"}: 0.01,
	{"m", "km"}: 0.001, {"km", "m"}: 1000.0,
	{"m", "in"}: 39.3701, {"in", "m"}: 1 / 39.3701,
	{"m", "ft"}: 3.28084, {"ft", "m"}: 0.3048,
	{"km", "mi"}: 0.621371, {"mi", "km"}: 1.60934,
	{"yd", "ft"}: 3.0, {"ft", "yd"}: 1 / 3.0,
	{"in", "ft"}: 1 / 12.0, {"ft", "in"}: 12.0,
	{"mi", "yd"}: 1760.0, {"yd", "mi"}: 1 / 1760.0,
	{"nm", "m"}: 1e-9, {"m", "nm"}: 1e9, // nanometers
	{"au", "km"}: 149597870.7, {"km", "au"}: 1 / 149597870.7,
	{"ly", "km"}: 9.461e12, {"km", "ly"}: 1 / 9.461e12,

	// Mass
	{"kg", "g"}: 1000.0, {"g", "kg"}: 0.001,
	{"kg", "lb"}: 2.20462, {"lb", "kg"}: 0.453592,
	{"g", "mg"}: 1000.0, {"mg", "g"}: 0.001,
	{"oz", "g"}: 28.3495, {"g", "oz"}: 1 / 28.3495,
	{"lb", "oz"}: 16.0, {"oz", "lb"}: 1 / 16.0,
	{"ton", "kg"}: 1000.0, {"kg", "ton"}: 1 / 1000.0,

	// Force
	{"n", "lbf"}: 0.224809, {"lbf", "n"}: 4.44822,
	// Torque, note "nm" here would collide with nanometers, so newton-meters
	// only pair with "lb-ft"
	{"nm", "lb-ft"}: 0.737562, {"lb-ft", "nm"}: 1.35582,
	// Density
	{"kg/m3", "lb/ft3"}: 0.062428, {"lb/ft3", "kg/m3"}: 16.0185,
}

// temperatures maps a unit pair to its affine conversion formula. The
// linear table is consulted first on lookup, so an entry here for a pair
// already in factors would be shadowed. The tables are disjoint.
var temperatures = map[Pair]func(float64) float64{
	{"c", "f"}: celsiusToFahrenheit,
	{"f", "c"}: fahrenheitToCelsius,
	{"c", "k"}: celsiusToKelvin,
	{"k", "c"}: kelvinToCelsius,
	{"f", "k"}: fahrenheitToKelvin,
	{"k", "f"}: kelvinToFahrenheit,
}

func celsiusToFahrenheit(v float64) float64 { return v*9/5 + 32 }
func fahrenheitToCelsius(v float64) float64 { return (v - 32) * 5 / 9 }
func celsiusToKelvin(v float64) float64     { return v + 273.15 }
func kelvinToCelsius(v float64) float64     { return v - 273.15 }
func fahrenheitToKelvin(v float64) float64  { return (v-32)*5/9 + 273.15 }
func kelvinToFahrenheit(v float64) float64  { return (v-273.15)*9/5 + 32 }

// Convert converts value from one unit to another. The unit codes are
// folded to lower case; no other normalization is applied. If the ordered
// pair is present in neither table, Convert returns an [*UnsupportedError].
//
// Convert is a pure function over immutable tables and is safe to call
// concurrently without synchronization.
func Convert(value float64, from, to string) (float64, error) {
	p := Pair{strings.ToLower(from), strings.ToLower(to)}

	if factor, ok := factors[p]; ok {
		return value * factor, nil
	}

	if formula, ok := temperatures[p]; ok {
		return formula(value), nil
	}

	return 0, &UnsupportedError{p.From, p.To}
}

// Supported reports whether the ordered unit pair (from, to) is
// convertible, after case-folding.
func Supported(from, to string) bool {
	p := Pair{strings.ToLower(from), strings.ToLower(to)}

	if _, ok := factors[p]; ok {
		return true
	}

	_, ok := temperatures[p]

	return ok
}

// Pairs returns every supported unit pair, sorted by source then target
// unit.
func Pairs() []Pair {
	pairs := make([]Pair, 0, len(factors)+len(temperatures))

	for p := range factors {
		pairs = append(pairs, p)
	}

	for p := range temperatures {
		pairs = append(pairs, p)
	}

	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	return pairs
}
