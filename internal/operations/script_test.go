package operations

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"holdings/internal/portfolio"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
# comment
buy ABC 50.25 10
  SELL ABC 3
print
`
	steps, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "buy", steps[0].Op)
	assert.Equal(t, "ABC", steps[0].Symbol)
	assert.True(t, steps[0].Price.Equal(decimal.RequireFromString("50.25")))
	assert.Equal(t, int64(10), steps[0].Quantity)
	assert.Equal(t, 3, steps[0].Line)

	assert.Equal(t, "sell", steps[1].Op)
	assert.Equal(t, int64(3), steps[1].Quantity)
	assert.Equal(t, 4, steps[1].Line)

	assert.Equal(t, opPrint, steps[2].Op)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]int{
		"buy ABC 50":          1,
		"buy ABC x 10":        1,
		"sell ABC":            1,
		"print\nsell ABC ten": 2,
		"hold ABC 1":          1,
		"print now":           1,
	}
	for src, line := range cases {
		_, err := Parse(strings.NewReader(src))
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "%q: got %v", src, err)
		assert.Equal(t, line, pe.Line, src)
	}
}

func TestRunContinuesPastRejections(t *testing.T) {
	src := `buy ABC 50 10
sell ABC 11
sell NOPE 1
sell ABC 10
`
	steps, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	var out bytes.Buffer
	p := portfolio.New(&out, quietLogger())
	rejected, err := NewRunner(Default(), quietLogger()).Run(p, steps)
	require.NoError(t, err)
	assert.Equal(t, 2, rejected)
	assert.Equal(t, 0, p.Len())
	assert.Contains(t, out.String(), "Not enough shares of ABC to sell.\n")
	assert.Contains(t, out.String(), "Stock NOPE not found in portfolio.\n")
}

func TestRunStopsOnMissingOperation(t *testing.T) {
	steps := []Step{{Line: 7, Op: "sell", Symbol: "ABC", Quantity: 1}}
	table := Table{"buy": Default()["buy"]}

	p := portfolio.New(nil, quietLogger())
	_, err := NewRunner(table, quietLogger()).Run(p, steps)
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), "line 7")
}

func TestParseLineTooLong(t *testing.T) {
	src := "buy ABC 50 10\nsell ABC " + strings.Repeat("1", bufio.MaxScanTokenSize+1) + "\n"

	_, err := Parse(strings.NewReader(src))
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 2, pe.Line)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestRunRejectsQuantityOverflow(t *testing.T) {
	src := "buy ABC 1 9223372036854775807\nbuy ABC 2 1\n"
	steps, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	p := portfolio.New(nil, quietLogger())
	rejected, err := NewRunner(Default(), quietLogger()).Run(p, steps)
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)
	h, ok := p.Holding("ABC")
	require.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), h.Quantity)
	assert.True(t, h.Price.Equal(decimal.NewFromInt(1)))
}
