package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettleGrid(t *testing.T) {
	cases := []struct {
		total, paid float64
		status      PaymentStatus
		balance     float64
		overpaid    bool
	}{
		{1000, 0, StatusPending, 1000, false},
		{1000, -5, StatusPending, 1005, false},
		{1000, 0.01, StatusPartial, 999.99, false},
		{1000, 500, StatusPartial, 500, false},
		{1000, 999.99, StatusPartial, 0.01, false},
		{1000, 1000, StatusPaid, 0, false},
		{1000, 1200, StatusPaid, -200, true},
	}
	for _, c := range cases {
		s := Settle(c.total, c.paid)
		require.Equal(t, c.status, s.Status, "total=%v paid=%v", c.total, c.paid)
		require.Equal(t, c.balance, s.BalanceAmount, "total=%v paid=%v", c.total, c.paid)
		require.Equal(t, c.overpaid, s.Overpaid, "total=%v paid=%v", c.total, c.paid)
	}
}

func TestApplyPayment(t *testing.T) {
	s, err := ApplyPayment(1000, 300, 200)
	require.NoError(t, err)
	require.Equal(t, 500.0, s.PaidAmount)
	require.Equal(t, 500.0, s.BalanceAmount)
	require.Equal(t, StatusPartial, s.Status)

	s, err = ApplyPayment(1000, 300, 700)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, s.Status)
	require.Equal(t, 0.0, s.BalanceAmount)
	require.False(t, s.Overpaid)
}

func TestApplyPaymentValidation(t *testing.T) {
	_, err := ApplyPayment(1000, 300, 0)
	require.ErrorIs(t, err, ErrNonPositivePayment)

	_, err = ApplyPayment(1000, 300, -10)
	require.ErrorIs(t, err, ErrNonPositivePayment)

	_, err = ApplyPayment(1000, 300, 700.01)
	require.ErrorIs(t, err, ErrExceedsBalance)
}

func TestReversePayment(t *testing.T) {
	s := ReversePayment(1000, 1000, 400)
	require.Equal(t, 600.0, s.PaidAmount)
	require.Equal(t, StatusPartial, s.Status)

	s = ReversePayment(1000, 400, 400)
	require.Equal(t, StatusPending, s.Status)
	require.Equal(t, 1000.0, s.BalanceAmount)
}
