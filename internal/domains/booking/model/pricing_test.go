package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quickcourt/internal/domains/booking/model"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name         string
		rate         int64
		hours        int
		feePercent   float64
		taxPercent   float64
		wantSubtotal int64
		wantFee      int64
		wantTax      int64
		wantTotal    int64
	}{
		{name: "no fees", rate: 50000, hours: 2, wantSubtotal: 100000, wantTotal: 100000},
		{name: "service fee only", rate: 50000, hours: 2, feePercent: 5, wantSubtotal: 100000, wantFee: 5000, wantTotal: 105000},
		{name: "fee and tax", rate: 50000, hours: 1, feePercent: 5, taxPercent: 18, wantSubtotal: 50000, wantFee: 2500, wantTax: 9450, wantTotal: 61950},
		{name: "rounds half up", rate: 10, hours: 1, feePercent: 5, wantSubtotal: 10, wantFee: 1, wantTotal: 11},
		{name: "fractional fee exact half", rate: 5500, hours: 1, feePercent: 0.7, wantSubtotal: 5500, wantFee: 39, wantTotal: 5539},
		{name: "fractional fee exact half over hours", rate: 3500, hours: 3, feePercent: 0.7, wantSubtotal: 10500, wantFee: 74, wantTotal: 10574},
		{name: "fractional tax exact half", rate: 2500, hours: 1, taxPercent: 0.3, wantSubtotal: 2500, wantTax: 8, wantTotal: 2508},
		{name: "fractional fee below half", rate: 5400, hours: 1, feePercent: 0.7, wantSubtotal: 5400, wantFee: 38, wantTotal: 5438},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := model.Quote(tt.rate, tt.hours, model.BasisPoints(tt.feePercent), model.BasisPoints(tt.taxPercent))

			assert.Equal(t, tt.wantSubtotal, price.Subtotal)
			assert.Equal(t, tt.wantFee, price.ServiceFee)
			assert.Equal(t, tt.wantTax, price.Tax)
			assert.Equal(t, tt.wantTotal, price.Total)
			assert.Equal(t, price.Subtotal+price.ServiceFee+price.Tax, price.Total)
		})
	}
}

func TestBasisPoints(t *testing.T) {
	assert.Equal(t, int64(70), model.BasisPoints(0.7))
	assert.Equal(t, int64(1225), model.BasisPoints(12.25))
	assert.Equal(t, int64(500), model.BasisPoints(5))
	assert.Equal(t, int64(0), model.BasisPoints(0))
}
