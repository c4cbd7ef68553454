package model

import "math"

const basisPointsPerUnit = 10000

// Price is the breakdown of a booking's cost in minor currency units.
type Price struct {
	HourlyRate int64
	Hours      int
	Subtotal   int64
	ServiceFee int64
	Tax        int64
	Total      int64
}

// BasisPoints converts a percentage with up to two decimals, such as 0.7 or
// 12.25, into hundredths of a percent.
func BasisPoints(percent float64) int64 {
	return int64(math.Round(percent * 100))
}

// Quote prices hours at hourlyRate. The service fee is a share of the
// subtotal and the tax a share of subtotal plus fee, both given in basis
// points and each rounded half away from zero.
func Quote(hourlyRate int64, hours int, serviceFeeBps, taxBps int64) Price {
	subtotal := hourlyRate * int64(hours)
	fee := share(subtotal, serviceFeeBps)
	tax := share(subtotal+fee, taxBps)

	return Price{
		HourlyRate: hourlyRate,
		Hours:      hours,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Tax:        tax,
		Total:      subtotal + fee + tax,
	}
}

func share(amount, bps int64) int64 {
	product := amount * bps
	if product < 0 {
		return -((-product + basisPointsPerUnit/2) / basisPointsPerUnit)
	}

	return (product + basisPointsPerUnit/2) / basisPointsPerUnit
}
