package sparse

const (
	DefaultRelThreshold float64 = 1e-12
	DefaultAbsThreshold float64 = 0.0
	DefaultPrinterWidth int     = 80
)

type Ordering int

const (
	MarkowitzOrdering Ordering = iota // minimum Markowitz product on the diagonal
	NaturalOrdering                   // factor in external index order
)

func (o Ordering) String() string {
	switch o {
	case NaturalOrdering:
		return "natural"
	case MarkowitzOrdering:
		return "markowitz"
	}
	return "unknown"
}

// Configuration controls factorization and printing.
type Configuration struct {
	RelThreshold float64  // pivot is zero below RelThreshold * largest |original entry|
	AbsThreshold float64  // pivot is zero at or below this magnitude
	Ordering     Ordering // pivot order used by Factor
	PrinterWidth int      // Default: 80
}

func DefaultConfiguration() Configuration {
	return Configuration{
		RelThreshold: DefaultRelThreshold,
		AbsThreshold: DefaultAbsThreshold,
		Ordering:     MarkowitzOrdering,
		PrinterWidth: DefaultPrinterWidth,
	}
}

// Matrix is an immutable rows x cols sparse matrix stored as orthogonal
// linked lists. Rows and columns are 1-based; slot 0 of every vector is unused.
type Matrix struct {
	Config Configuration

	Rows    int  // Row count
	Cols    int  // Column count
	Complex bool // Imaginary parts are meaningful

	Diags      []*Element // Diagonal elements [1...min(Rows,Cols)]
	FirstInRow []*Element // First element in each row [1...Rows]
	FirstInCol []*Element // First element in each column [1...Cols]

	Elements int // Element count
}

type Element struct {
	Real      float64
	Imag      float64
	Row       int
	Col       int
	NextInRow *Element
	NextInCol *Element
}

func (e *Element) Value() complex128 {
	return complex(e.Real, e.Imag)
}

type triplet struct {
	row   int
	col   int
	value complex128
}
