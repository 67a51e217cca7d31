package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	totals, err := Aggregate([]float64{450, 50}, 10, 100)
	require.NoError(t, err)
	require.Equal(t, 500.0, totals.Subtotal)
	require.Equal(t, 50.0, totals.DiscountAmount)
	require.Equal(t, 450.0, totals.TotalAmount)
	require.Equal(t, 350.0, totals.BalanceAmount)
	require.Equal(t, StatusPartial, totals.Status)
}

func TestAggregateRejectsEmpty(t *testing.T) {
	_, err := Aggregate(nil, 0, 0)
	require.ErrorIs(t, err, ErrNoLines)

	_, err = Aggregate([]float64{}, 0, 0)
	require.ErrorIs(t, err, ErrNoLines)
}

func TestAggregateRejectsBadDiscount(t *testing.T) {
	_, err := Aggregate([]float64{100}, 101, 0)
	require.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = Aggregate([]float64{100}, -1, 0)
	require.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestAggregateIdempotent(t *testing.T) {
	lines := []float64{123.45, 67.89, 0.01}
	a, err := Aggregate(lines, 7.5, 50)
	require.NoError(t, err)
	b, err := Aggregate(lines, 7.5, 50)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// Editing a document after partial payment keeps the original paid amount
// while totals are recomputed; if the new total dips below what was already
// paid, the balance goes negative and the document reads paid.
func TestAggregatePreservedPaymentOverflow(t *testing.T) {
	totals, err := Aggregate([]float64{300}, 0, 500)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, totals.Status)
	require.Equal(t, -200.0, totals.BalanceAmount)
	require.True(t, totals.Overpaid)
}

func TestAggregateSale(t *testing.T) {
	// one line: mrp=50, discount=0, qty=10, resolved cost 30
	lines := []SaleLineCost{{Total: 500, CostPrice: 30, Quantity: 10}}
	totals, err := AggregateSale(lines, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 500.0, totals.TotalAmount)
	require.Equal(t, 300.0, totals.TotalCost)
	require.Equal(t, 200.0, totals.TotalProfit)
	require.Equal(t, 40.0, ProfitMargin(totals.TotalProfit, totals.TotalAmount))
}

func TestAggregateSaleDocumentDiscountEatsProfit(t *testing.T) {
	lines := []SaleLineCost{{Total: 500, CostPrice: 30, Quantity: 10}}
	totals, err := AggregateSale(lines, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 250.0, totals.TotalAmount)
	// profit is measured against the discounted document total
	require.Equal(t, -50.0, totals.TotalProfit)
}
