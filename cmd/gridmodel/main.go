// Command gridmodel loads a JSON case file, builds the network model and
// prints its admittance matrix, ratings and PTDF.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/mat"

	"gridmodel"
	"gridmodel/caseio"
	"gridmodel/ptdf"
)

type options struct {
	casePath       string
	ybus           bool
	ptdf           bool
	incidence      bool
	solver         string
	reference      int
	firstReference bool
	width          int
	logLevel       string
}

func main() {
	var opts options
	flag.StringVar(&opts.casePath, "case", "", "JSON case file")
	flag.BoolVar(&opts.ybus, "ybus", true, "print the admittance matrix")
	flag.BoolVar(&opts.ptdf, "ptdf", true, "print the PTDF matrix")
	flag.BoolVar(&opts.incidence, "incidence", false, "print the incidence pattern")
	flag.StringVar(&opts.solver, "solver", "sparse", "PTDF solver: sparse or dense")
	flag.IntVar(&opts.reference, "reference", 0, "reference bus number; 0 uses the bus types")
	flag.BoolVar(&opts.firstReference, "first-reference", false, "use the first of several reference buses instead of failing")
	flag.IntVar(&opts.width, "width", 0, "printer width in characters")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.casePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(os.Stdout, opts, logger); err != nil {
		logger.Error("build failed", slog.String("case", opts.casePath), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(w io.Writer, opts options, logger *slog.Logger) error {
	c, err := caseio.Load(opts.casePath)
	if err != nil {
		return err
	}

	config := gridmodel.DefaultConfiguration()
	config.RetainIncidence = opts.incidence
	config.ReferenceBus = opts.reference
	config.PrinterWidth = opts.width
	config.Logger = logger
	if opts.firstReference {
		config.ReferencePolicy = ptdf.ReferenceFirst
	}
	if config.Solver, err = ptdf.ParseSolver(opts.solver); err != nil {
		return err
	}

	network, err := gridmodel.Build(len(c.Buses), c.Buses, c.Branches, &config)
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = opts.casePath
	}
	fmt.Fprintf(w, "%s: %d buses, %d branches\n\n", name, network.BusCount(), network.BranchCount())

	if opts.ybus {
		fmt.Fprintln(w, "YBUS")
		network.Ybus().Print(w, true, true)
	}

	fmt.Fprintln(w, "RATINGS")
	for i, rating := range network.Ratings() {
		fmt.Fprintf(w, "%4d %10.2f\n", i+1, rating)
	}
	fmt.Fprintln(w)

	if incidence, ok := network.Incidence(); ok {
		fmt.Fprintln(w, "INCIDENCE")
		incidence.Print(w, false, true)
	}

	if !opts.ptdf {
		return nil
	}
	p, ok := network.PTDF()
	if !ok {
		fmt.Fprintln(w, "PTDF undefined: no reference bus")
		return nil
	}
	fmt.Fprintf(w, "PTDF (reference bus %d)\n", p.Reference())
	if d := p.Dense(); d != nil {
		fmt.Fprintf(w, "%8.4f\n", mat.Formatted(d, mat.Squeeze()))
	}
	return nil
}
