package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zeenatstore/zeenat-store/pkg/money"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"5":         "5.00",
		"95":        "95.00",
		"999.999":   "1,000.00",
		"1234567.5": "1,234,567.50",
		"-12":       "-12.00",
		"100000":    "100,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.Format(decimal.RequireFromString(in)), in)
	}
}
