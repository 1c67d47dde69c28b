package gridmodel

import (
	"io"
	"log/slog"

	"gridmodel/ptdf"
	"gridmodel/sparse"
)

// Configuration controls how Build assembles a Network. A nil *Configuration
// passed to Build selects DefaultConfiguration.
type Configuration struct {
	RetainIncidence bool // keep the incidence matrix on the Network

	Solver          ptdf.Solver
	ReferencePolicy ptdf.ReferencePolicy
	ReferenceBus    int // 0 scans bus roles for the reference bus

	ZeroOutOfService bool    // out-of-service branches get a zero PTDF row
	ConditionLimit   float64 // dense solver only; 0 uses ptdf.DefaultConditionLimit

	PivotThreshold float64         // relative pivot threshold; 0 uses sparse.DefaultRelThreshold
	Ordering       sparse.Ordering // pivot order of the sparse solver
	PrinterWidth   int             // column width of printed matrices; 0 uses sparse.DefaultPrinterWidth

	Logger *slog.Logger // nil discards
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Solver:          ptdf.SolverSparse,
		ReferencePolicy: ptdf.ReferenceStrict,
		PivotThreshold:  sparse.DefaultRelThreshold,
		Ordering:        sparse.MarkowitzOrdering,
	}
}

func (c *Configuration) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c *Configuration) sparseConfiguration() sparse.Configuration {
	config := sparse.DefaultConfiguration()
	config.Ordering = c.Ordering
	if c.PivotThreshold > 0 {
		config.RelThreshold = c.PivotThreshold
	}
	if c.PrinterWidth > 0 {
		config.PrinterWidth = c.PrinterWidth
	}
	return config
}

func (c *Configuration) ptdfConfiguration() ptdf.Configuration {
	config := ptdf.DefaultConfiguration()
	config.Solver = c.Solver
	config.ReferencePolicy = c.ReferencePolicy
	config.ReferenceBus = c.ReferenceBus
	config.ZeroOutOfService = c.ZeroOutOfService
	if c.ConditionLimit > 0 {
		config.ConditionLimit = c.ConditionLimit
	}
	config.Sparse = c.sparseConfiguration()
	return config
}
