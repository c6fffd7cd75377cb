package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeenatstore/zeenat-store/internal/domain/cart"
)

func TestCart_AddMergesQuantityAndKeepsSnapshot(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add("p1", "Shirt", 2, decimal.RequireFromString("25.00")))
	require.NoError(t, c.Add("p1", "Shirt", 1, decimal.RequireFromString("30.00")))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("75.00")))
}

func TestCart_RejectsBadInput(t *testing.T) {
	c := cart.New()
	assert.Error(t, c.Add("", "x", 1, decimal.NewFromInt(1)))
	assert.Error(t, c.Add("p1", "x", 0, decimal.NewFromInt(1)))
	assert.True(t, c.IsEmpty())
}

func TestCart_ZeroValueUsable(t *testing.T) {
	var c cart.Cart
	require.NoError(t, c.Add("p1", "Cap", 1, decimal.NewFromInt(5)))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.QuantityOf("p1"))
}

func TestCart_LinesSortedByProductID(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add("b", "B", 1, decimal.NewFromInt(1)))
	require.NoError(t, c.Add("a", "A", 1, decimal.NewFromInt(1)))
	lines := c.Lines()
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, "b", lines[1].ProductID)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add("a", "A", 1, decimal.NewFromInt(1)))
	require.NoError(t, c.Add("b", "B", 1, decimal.NewFromInt(1)))
	c.Remove("a")
	c.Remove("missing")
	assert.Equal(t, 1, c.Len())
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_JSONRoundTripDropsInvalidLines(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add("a", "A", 3, decimal.RequireFromString("25.00")))
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	restored := cart.New()
	require.NoError(t, json.Unmarshal(raw, restored))
	assert.Equal(t, 3, restored.QuantityOf("a"))

	tampered := `[{"product_id":"a","name":"A","quantity":0,"unit_price":"1"}]`
	require.NoError(t, json.Unmarshal([]byte(tampered), restored))
	assert.True(t, restored.IsEmpty())
}
