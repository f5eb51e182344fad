package carrier

import "fmt"

// grams per unit
var weightFactors = map[WeightUnit]float64{
	WeightG:  1,
	WeightKG: 1000,
	WeightLB: 453.59237,
	WeightOZ: 28.349523125,
}

// ConvertWeight converts value from one weight unit to another.
func ConvertWeight(value float64, from, to WeightUnit) (float64, error) {
	if from == to {
		return value, nil
	}
	ff, ok := weightFactors[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeightUnit, from)
	}
	tf, ok := weightFactors[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeightUnit, to)
	}
	return value * ff / tf, nil
}
