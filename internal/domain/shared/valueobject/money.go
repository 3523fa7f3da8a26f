// Package valueobject holds immutable values shared by the catalog and cart.
package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is an ISO 4217 code.
type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
)

// DefaultCurrency is the currency every catalog price is quoted in, and
// the currency of the zero Money.
const DefaultCurrency = INR

// ErrCurrencyMismatch is returned when amounts in two currencies are combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

var (
	symbols = map[Currency]string{INR: "₹", USD: "$"}
	printer = message.NewPrinter(language.MustParse("en-IN"))
)

// Money is an exact amount in one currency. Methods never mutate the
// receiver.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney validates cur against ISO 4217.
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	if _, err := currency.ParseISO(string(cur)); err != nil {
		return Money{}, fmt.Errorf("currency %q: %w", cur, err)
	}
	return Money{amount: amount, currency: cur}, nil
}

// NewMoneyFromString parses a decimal amount such as "1299.50".
func NewMoneyFromString(amount string, cur Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("amount %q: %w", amount, err)
	}
	return NewMoney(d, cur)
}

// Rupees is a whole-rupee amount.
func Rupees(n int64) Money {
	return Money{amount: decimal.NewFromInt(n), currency: INR}
}

func Zero(cur Currency) Money { return Money{currency: cur} }

func ZeroINR() Money { return Zero(INR) }

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() Currency {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) with(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: m.Currency()}
}

func (m Money) check(other Money) error {
	if m.Currency() != other.Currency() {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	return nil
}

// Add fails with ErrCurrencyMismatch across currencies.
func (m Money) Add(other Money) (Money, error) {
	if err := m.check(other); err != nil {
		return Money{}, err
	}
	return m.with(m.amount.Add(other.amount)), nil
}

// Subtract fails with ErrCurrencyMismatch across currencies.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.check(other); err != nil {
		return Money{}, err
	}
	return m.with(m.amount.Sub(other.amount)), nil
}

// MustAdd is Add for amounts known to share a currency; it panics otherwise.
func (m Money) MustAdd(other Money) Money { return must(m.Add(other)) }

// MustSubtract is Subtract for amounts known to share a currency.
func (m Money) MustSubtract(other Money) Money { return must(m.Subtract(other)) }

func must(m Money, err error) Money {
	if err != nil {
		panic(err)
	}
	return m
}

// Times multiplies by a unit count.
func (m Money) Times(n int) Money {
	return m.with(m.amount.Mul(decimal.NewFromInt(int64(n))))
}

// Cmp orders by amount alone: -1, 0 or +1.
func (m Money) Cmp(other Money) int { return m.amount.Cmp(other.amount) }

func (m Money) Equals(other Money) bool {
	return m.Currency() == other.Currency() && m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool           { return m.Cmp(other) < 0 }
func (m Money) GreaterThanOrEqual(other Money) bool { return m.Cmp(other) >= 0 }

// PercentOff is the markdown of m against a higher reference price, as a
// whole percentage rounded half away from zero. It is 0 unless reference
// is above m.
func (m Money) PercentOff(reference Money) int {
	if reference.Cmp(m) <= 0 || reference.IsZero() {
		return 0
	}
	off := reference.amount.Sub(m.amount).Div(reference.amount).Shift(2)
	return int(off.Round(0).IntPart())
}

// Float64 may lose precision; use it for metrics only.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

// String is "<amount> <code>" with two decimals, e.g. "1299.00 INR".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.Currency())
}

// Display is the storefront rendering: "₹1,299", or "₹10.50" when there
// are paise.
func (m Money) Display() string {
	sym, ok := symbols[m.Currency()]
	if !ok {
		sym = string(m.Currency()) + " "
	}
	if !m.amount.BigInt().IsInt64() {
		// out of the printer's range; ungrouped digits
		if m.amount.IsInteger() {
			return sym + m.amount.String()
		}
		return sym + m.amount.StringFixed(2)
	}
	if m.amount.IsInteger() {
		return sym + printer.Sprintf("%d", m.amount.IntPart())
	}
	return sym + printer.Sprintf("%.2f", m.Float64())
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON writes the amount as a string to keep it exact.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.Currency()})
}

// UnmarshalJSON accepts a missing currency as DefaultCurrency.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", v.Amount, err)
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	*m = Money{amount: amount, currency: v.Currency}
	return nil
}
