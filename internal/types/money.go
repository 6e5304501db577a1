// README: Common money value object used across modules.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Money holds an amount in integer cents. All fare arithmetic happens on
// cents so return-trip doubling and component sums stay exact; the decimal
// form only appears at the JSON boundary.
type Money struct {
	Amount   int64
	Currency string
}

func NewMoney(cents int64, currency string) Money {
	return Money{Amount: cents, Currency: currency}
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}
}

func (m Money) MulN(n int64) Money {
	return Money{Amount: m.Amount * n, Currency: m.Currency}
}

// String renders the amount as a fixed-point decimal, e.g. "60.00".
func (m Money) String() string {
	sign := ""
	a := m.Amount
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%q,"currency":%q}`, m.String(), m.Currency)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cents, err := ParseCents(raw.Amount)
	if err != nil {
		return err
	}
	m.Amount = cents
	m.Currency = raw.Currency
	return nil
}

// ParseCents converts a fixed-point decimal string ("60.00", "-1.5", "7")
// to cents. More than two fractional digits is rejected rather than
// silently truncated.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty money amount")
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("money amount %q has sub-cent precision", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad money amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad money amount %q", s)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}
