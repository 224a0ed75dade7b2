// Command discount prints discount factors and zero-rate sensitivities for
// a calibrated zero curve, supplied either as a JSON file or from Postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/quantfn/rateslib/currency"
	"github.com/quantfn/rateslib/curve"
	"github.com/quantfn/rateslib/daycount"
	"github.com/quantfn/rateslib/discount"
	"github.com/quantfn/rateslib/marketdata/pg"
)

const dateLayout = "2006-01-02"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "df":
		return runDF(args[1:], stdout, stderr)
	case "sens":
		return runSens(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: discount <command> [options] <date> [<date> ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  df    Discount factors, optionally spread-adjusted")
	fmt.Fprintln(w, "  sens  Zero-rate point and curve parameter sensitivities")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `discount <command> -h` for command-specific help.")
}

// engineFlags are the curve/engine inputs shared by both commands.
type engineFlags struct {
	input     string
	dsn       string
	curveName string
	asOf      string
	ccy       string
	valuation string

	spread      float64
	compounding string
	freq        int
}

func registerEngineFlags(fs *flag.FlagSet) *engineFlags {
	ef := &engineFlags{}
	fs.StringVar(&ef.input, "input", "", "curve JSON path")
	fs.StringVar(&ef.dsn, "dsn", "", "Postgres DSN (alternative to -input)")
	fs.StringVar(&ef.curveName, "curve", "", "curve name (with -dsn)")
	fs.StringVar(&ef.asOf, "asof", "", "curve as-of date YYYY-MM-DD (with -dsn)")
	fs.StringVar(&ef.ccy, "ccy", "", "currency (with -dsn)")
	fs.StringVar(&ef.valuation, "valuation", "", "valuation date YYYY-MM-DD (with -dsn, defaults to -asof)")
	fs.Float64Var(&ef.spread, "spread", 0, "constant spread added to the zero rate")
	fs.StringVar(&ef.compounding, "compounding", "continuous", "spread compounding: continuous or periodic")
	fs.IntVar(&ef.freq, "freq", 1, "periods per year for periodic compounding")
	return ef
}

// curveInput is the JSON curve file format.
type curveInput struct {
	CurveName     string      `json:"curve_name"`
	Currency      string      `json:"currency"`
	DayCount      string      `json:"day_count"`
	ValuationDate string      `json:"valuation_date"`
	Nodes         []curveNode `json:"nodes"`
}

type curveNode struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (ef *engineFlags) buildEngine() (*discount.ZeroRateDiscountFactors, error) {
	switch {
	case ef.input != "":
		return engineFromFile(ef.input)
	case ef.dsn != "":
		return engineFromDB(ef)
	default:
		return nil, fmt.Errorf("either -input or -dsn is required")
	}
}

func engineFromFile(path string) (*discount.ZeroRateDiscountFactors, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var in curveInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	ccy, err := currency.Of(in.Currency)
	if err != nil {
		return nil, err
	}
	dc, err := daycount.Of(in.DayCount)
	if err != nil {
		return nil, err
	}
	valDate, err := time.Parse(dateLayout, in.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("valuation_date parse: %w", err)
	}
	xs := make([]float64, len(in.Nodes))
	ys := make([]float64, len(in.Nodes))
	for i, n := range in.Nodes {
		xs[i] = n.X
		ys[i] = n.Y
	}
	crv, err := curve.NewInterpolatedNodalCurve(curve.Metadata{
		Name:       in.CurveName,
		XValueType: curve.YearFraction,
		YValueType: curve.ZeroRate,
		DayCount:   dc,
	}, xs, ys)
	if err != nil {
		return nil, err
	}
	return discount.New(ccy, valDate, crv)
}

func engineFromDB(ef *engineFlags) (*discount.ZeroRateDiscountFactors, error) {
	if ef.curveName == "" || ef.asOf == "" || ef.ccy == "" {
		return nil, fmt.Errorf("-curve, -asof and -ccy are required with -dsn")
	}
	asOf, err := time.Parse(dateLayout, ef.asOf)
	if err != nil {
		return nil, fmt.Errorf("asof parse: %w", err)
	}
	valDate := asOf
	if ef.valuation != "" {
		valDate, err = time.Parse(dateLayout, ef.valuation)
		if err != nil {
			return nil, fmt.Errorf("valuation parse: %w", err)
		}
	}
	ccy, err := currency.Of(ef.ccy)
	if err != nil {
		return nil, err
	}

	store, err := pg.Open(ef.dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	crv, err := store.LoadCurve(context.Background(), ef.curveName, asOf)
	if err != nil {
		return nil, err
	}
	return discount.New(ccy, valDate, crv)
}

func (ef *engineFlags) compoundingMode() (discount.Compounding, error) {
	switch strings.ToLower(strings.TrimSpace(ef.compounding)) {
	case "continuous":
		return discount.Continuous, nil
	case "periodic":
		return discount.Periodic, nil
	default:
		return 0, fmt.Errorf("unknown compounding %q", ef.compounding)
	}
}

func parseDates(args []string) ([]time.Time, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one date is required")
	}
	dates := make([]time.Time, len(args))
	for i, a := range args {
		d, err := time.Parse(dateLayout, a)
		if err != nil {
			return nil, fmt.Errorf("date parse %q: %w", a, err)
		}
		dates[i] = d
	}
	return dates, nil
}

func runDF(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("df", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ef := registerEngineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	engine, err := ef.buildEngine()
	if err != nil {
		fmt.Fprintf(stderr, "df: %v\n", err)
		return 2
	}
	dates, err := parseDates(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "df: %v\n", err)
		return 2
	}
	comp, err := ef.compoundingMode()
	if err != nil {
		fmt.Fprintf(stderr, "df: %v\n", err)
		return 2
	}

	fmt.Fprintf(stdout, "Curve: %s  Currency: %s  Valuation: %s\n",
		engine.CurveName(), engine.Currency(), engine.ValuationDate().Format(dateLayout))
	fmt.Fprintln(stdout, "Date, DF")
	for _, date := range dates {
		var df float64
		if ef.spread != 0 {
			df, err = engine.DiscountFactorWithSpread(date, ef.spread, comp, ef.freq)
			if err != nil {
				fmt.Fprintf(stderr, "df: %v\n", err)
				return 2
			}
		} else {
			df = engine.DiscountFactor(date)
		}
		fmt.Fprintf(stdout, "%s, %.12f\n", date.Format(dateLayout), df)
	}
	return 0
}

func runSens(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ef := registerEngineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	engine, err := ef.buildEngine()
	if err != nil {
		fmt.Fprintf(stderr, "sens: %v\n", err)
		return 2
	}
	dates, err := parseDates(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "sens: %v\n", err)
		return 2
	}
	comp, err := ef.compoundingMode()
	if err != nil {
		fmt.Fprintf(stderr, "sens: %v\n", err)
		return 2
	}

	fmt.Fprintf(stdout, "Curve: %s  Currency: %s  Valuation: %s\n",
		engine.CurveName(), engine.Currency(), engine.ValuationDate().Format(dateLayout))
	for _, date := range dates {
		var point discount.PointSensitivity
		if ef.spread != 0 {
			point, err = engine.ZeroRatePointSensitivityWithSpread(date, ef.spread, comp, ef.freq)
			if err != nil {
				fmt.Fprintf(stderr, "sens: %v\n", err)
				return 2
			}
		} else {
			point = engine.ZeroRatePointSensitivity(date)
		}

		params, err := engine.ParameterSensitivity(point)
		if err != nil {
			fmt.Fprintf(stderr, "sens: %v\n", err)
			return 2
		}

		fmt.Fprintf(stdout, "%s point=%.12f\n", date.Format(dateLayout), point.Value)
		for _, e := range params.Entries() {
			fmt.Fprintf(stdout, "  %s %s nodes=%v\n", e.CurveName, e.Currency, e.Sensitivity)
		}
	}
	return 0
}
