package earnings_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/domain/earnings"
)

func TestTableLookup(t *testing.T) {
	table := earnings.DefaultTable()

	pln, err := table.Lookup("PLN")
	require.NoError(t, err)
	require.Equal(t, "zł", pln.Symbol)
	require.Equal(t, 4.02, pln.Rate)

	_, err = table.Lookup("XXX")
	require.ErrorIs(t, err, earnings.ErrUnknownCurrency)
}

func TestConvert(t *testing.T) {
	table := earnings.DefaultTable()
	usd, _ := table.Lookup("USD")
	pln, _ := table.Lookup("PLN")
	eur, _ := table.Lookup("EUR")

	amount := decimal.NewFromInt(100)

	require.Equal(t, "402.00", earnings.Convert(amount, usd, pln).StringFixed(2))
	require.Equal(t, "93.00", earnings.Convert(amount, usd, eur).StringFixed(2))
	require.Equal(t, "24.88", earnings.Convert(amount, pln, usd).StringFixed(2))
}

func TestConvertIdentityIsExact(t *testing.T) {
	table := earnings.DefaultTable()
	pln, _ := table.Lookup("PLN")

	amount := decimal.RequireFromString("123.456789")
	require.True(t, amount.Equal(earnings.Convert(amount, pln, pln)))
}

func TestConvertRoundTripsThroughBase(t *testing.T) {
	table := earnings.DefaultTable()
	usd, _ := table.Lookup("USD")
	jpy, _ := table.Lookup("JPY")

	amount := decimal.NewFromInt(1000)
	there := earnings.Convert(amount, usd, jpy)
	back := earnings.Convert(there, jpy, usd)
	require.Equal(t, "1000.00", back.StringFixed(2))
}
