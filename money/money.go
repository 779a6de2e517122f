package money

import (
	"encoding/json"
	"strings"

	"github.com/zllovesuki/offering/faults"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code (e.g. "USD")
type Currency string

// minorUnitExponents maps a currency to the number of decimal places of its
// minor unit. Currencies not listed here use the common exponent of 2.
var minorUnitExponents = map[Currency]int32{
	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,
}

// Exponent returns the minor unit exponent of the currency
func (c Currency) Exponent() int32 {
	if exp, ok := minorUnitExponents[Currency(strings.ToUpper(string(c)))]; ok {
		return exp
	}
	return 2
}

// Money is an amount in a single currency. The zero value has an empty
// currency and adopts the currency of the first operand it is combined with,
// so it can seed an accumulation.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// New returns a Money of the given amount and currency
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Zero returns a zero amount in the given currency
func Zero(currency Currency) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

// FromMajor parses a major unit amount string (e.g. "29.00")
func FromMajor(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, faults.ErrInvalidArgument().
			WithMessagef("cannot parse %q as a monetary amount", amount)
	}
	return New(d, currency), nil
}

// FromMinor returns a Money from an integer count of minor units
func FromMinor(units int64, currency Currency) Money {
	return Money{
		Amount:   decimal.New(units, -currency.Exponent()),
		Currency: currency,
	}
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return nil
	}
	if m.Currency != other.Currency {
		return faults.ErrCurrencyMismatch().
			WithMessagef("cannot combine %s with %s", m.Currency, other.Currency)
	}
	return nil
}

// resolveCurrency picks the non-empty currency of the two operands
func (m Money) resolveCurrency(other Money) Currency {
	if m.Currency != "" {
		return m.Currency
	}
	return other.Currency
}

// Add returns m + other, failing on mismatched currencies
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.resolveCurrency(other),
	}, nil
}

// Subtract returns m - other, failing on mismatched currencies
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{
		Amount:   m.Amount.Sub(other.Amount),
		Currency: m.resolveCurrency(other),
	}, nil
}

// Multiply returns m scaled by a dimensionless factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{
		Amount:   m.Amount.Mul(factor),
		Currency: m.Currency,
	}
}

// Divide returns m divided by a dimensionless divisor
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, faults.ErrInvalidArgument().
			WithMessage("division by zero")
	}
	return Money{
		Amount:   m.Amount.Div(divisor),
		Currency: m.Currency,
	}, nil
}

// Ratio returns m / other as a dimensionless decimal. Both operands must be
// in the same currency and other must be non-zero.
func (m Money) Ratio(other Money) (decimal.Decimal, error) {
	if err := m.sameCurrency(other); err != nil {
		return decimal.Zero, err
	}
	if other.Amount.IsZero() {
		return decimal.Zero, faults.ErrInvalidArgument().
			WithMessage("ratio against a zero amount")
	}
	return m.Amount.Div(other.Amount), nil
}

// Negate returns -m
func (m Money) Negate() Money {
	return Money{
		Amount:   m.Amount.Neg(),
		Currency: m.Currency,
	}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Equal reports whether both currency and amount match
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// ToMajor returns the amount rounded to the currency's exponent
func (m Money) ToMajor() decimal.Decimal {
	return m.Amount.Round(m.Currency.Exponent())
}

// ToMinor returns the amount as an integer count of minor units
func (m Money) ToMinor() int64 {
	return m.Amount.Shift(m.Currency.Exponent()).Round(0).IntPart()
}

func (m Money) String() string {
	return m.ToMajor().StringFixed(m.Currency.Exponent()) + " " + string(m.Currency)
}

// serialized is the currency-tagged minor unit wire form
type serialized struct {
	Currency Currency `json:"currency"`
	Minor    int64    `json:"minorUnits"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(serialized{
		Currency: m.Currency,
		Minor:    m.ToMinor(),
	})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s serialized
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = FromMinor(s.Minor, s.Currency)
	return nil
}
