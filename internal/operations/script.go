package operations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"holdings/internal/portfolio"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Step is one parsed script line. Print steps carry only the line number.
type Step struct {
	Line     int
	Op       string
	Symbol   string
	Price    decimal.Decimal
	Quantity int64
}

const opPrint = "print"

// ParseError reports a malformed or unreadable script line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a script of the form
//
//	buy ABC 50 10
//	sell ABC 5
//	print
//
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		s, err := parseStep(n, f)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := sc.Err(); err != nil {
		// the scanner stops on the line it could not read
		return nil, &ParseError{Line: n + 1, Msg: err.Error(), Err: err}
	}
	return steps, nil
}

func parseStep(n int, f []string) (Step, error) {
	s := Step{Line: n, Op: strings.ToLower(f[0])}
	switch s.Op {
	case opPrint:
		if len(f) != 1 {
			return s, &ParseError{Line: n, Msg: "print takes no arguments"}
		}
		return s, nil
	case "buy":
		if len(f) != 4 {
			return s, &ParseError{Line: n, Msg: "usage: buy <symbol> <price> <quantity>"}
		}
		price, err := decimal.NewFromString(f[2])
		if err != nil {
			return s, &ParseError{Line: n, Msg: fmt.Sprintf("invalid price %q", f[2])}
		}
		s.Price = price
	case "sell":
		if len(f) != 3 {
			return s, &ParseError{Line: n, Msg: "usage: sell <symbol> <quantity>"}
		}
	default:
		return s, &ParseError{Line: n, Msg: fmt.Sprintf("unknown operation %q", f[0])}
	}
	s.Symbol = f[1]
	q, err := strconv.ParseInt(f[len(f)-1], 10, 64)
	if err != nil {
		return s, &ParseError{Line: n, Msg: fmt.Sprintf("invalid quantity %q", f[len(f)-1])}
	}
	s.Quantity = q
	return s, nil
}

// Runner replays steps against a portfolio through an operation table.
type Runner struct {
	table Table
	log   *logrus.Logger
}

func NewRunner(t Table, log *logrus.Logger) *Runner {
	return &Runner{table: t, log: log}
}

// Run applies every step in order. Rejected trades have already been reported
// on the portfolio's output, so they are logged and the run continues; the
// number of rejected steps is returned. Any other error stops the run.
func (r *Runner) Run(p *portfolio.Portfolio, steps []Step) (int, error) {
	rejected := 0
	for _, s := range steps {
		if s.Op == opPrint {
			p.Print()
			continue
		}
		err := r.table.Call(s.Op, p, s.Symbol, s.Price, s.Quantity)
		switch {
		case err == nil:
		case isRejection(err):
			rejected++
			r.log.Warnf("line %d: %v", s.Line, err)
		default:
			return rejected, fmt.Errorf("line %d: %w", s.Line, err)
		}
	}
	return rejected, nil
}

func isRejection(err error) bool {
	return errors.Is(err, portfolio.ErrInsufficientShares) ||
		errors.Is(err, portfolio.ErrSymbolNotFound) ||
		errors.Is(err, portfolio.ErrInvalidQuantity) ||
		errors.Is(err, portfolio.ErrInvalidPrice) ||
		errors.Is(err, portfolio.ErrQuantityOverflow)
}

// DemoScript is the canonical walkthrough: two buys, a partial sell and a
// sell that closes a holding, printing the portfolio after each phase.
const DemoScript = `# canonical walkthrough
buy ABC 50 10
buy XYZ 25 20
print
sell ABC 5
print
sell XYZ 20
print
`

// Demo runs DemoScript against p.
func Demo(p *portfolio.Portfolio, log *logrus.Logger) error {
	steps, err := Parse(strings.NewReader(DemoScript))
	if err != nil {
		return err
	}
	_, err = NewRunner(Default(), log).Run(p, steps)
	return err
}
