package grid

import "fmt"

type BranchKind int

const (
	KindLine BranchKind = iota + 1
	KindTransformer2W
	KindTransformer3W
)

func (k BranchKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindTransformer2W:
		return "transformer2w"
	case KindTransformer3W:
		return "transformer3w"
	}
	return fmt.Sprintf("BranchKind(%d)", int(k))
}

// Branch is one of *Line, *Transformer2W or *Transformer3W. The set is closed:
// only this package can add implementations.
type Branch interface {
	Kind() BranchKind
	Number() int      // 1-based incidence column and rating index
	InService() bool  // out-of-service branches keep their index slot
	Terminals() []int // bus numbers, from-side first
	Rating() float64  // thermal rating [MVA]

	sealed()
}

// Status returns 1 for an in-service branch and 0 otherwise.
func Status(b Branch) float64 {
	if b.InService() {
		return 1
	}
	return 0
}

// Line is a pi-model transmission line.
type Line struct {
	ID     int
	From   int
	To     int
	R      float64 // series resistance [pu]
	X      float64 // series reactance [pu]
	B      float64 // total line charging susceptance [pu]
	Rate   float64 // [MVA]
	Status bool
}

func (l *Line) Kind() BranchKind { return KindLine }
func (l *Line) Number() int { return l.ID }
func (l *Line) InService() bool { return l.Status }
func (l *Line) Terminals() []int { return []int{l.From, l.To} }
func (l *Line) Rating() float64 { return l.Rate }
func (l *Line) sealed() {}

// Transformer2W is a two-winding transformer with an off-nominal tap and
// phase shift on the From side.
type Transformer2W struct {
	ID     int
	From   int
	To     int
	R      float64    // series resistance [pu]
	X      float64    // series reactance [pu]
	Zb     complex128 // magnetizing shunt admittance folded at From [pu]
	Tap    float64    // off-nominal turns ratio [pu]
	Shift  float64    // phase shift [rad]
	Rate   float64    // [MVA]
	Status bool
}

func (t *Transformer2W) Kind() BranchKind { return KindTransformer2W }
func (t *Transformer2W) Number() int { return t.ID }
func (t *Transformer2W) InService() bool { return t.Status }
func (t *Transformer2W) Terminals() []int { return []int{t.From, t.To} }
func (t *Transformer2W) Rating() float64 { return t.Rate }
func (t *Transformer2W) sealed() {}

// Transformer3W is a three-winding transformer. Index k of R, X and B belongs
// to the winding at Buses[k].
type Transformer3W struct {
	ID     int
	Buses  [3]int
	R      [3]float64 // winding resistance [pu]
	X      [3]float64 // winding reactance [pu]
	B      [3]float64 // winding susceptance [pu]
	Rate   float64    // [MVA]
	Status bool
}

func (t *Transformer3W) Kind() BranchKind { return KindTransformer3W }
func (t *Transformer3W) Number() int { return t.ID }
func (t *Transformer3W) InService() bool { return t.Status }
func (t *Transformer3W) Terminals() []int { return []int{t.Buses[0], t.Buses[1], t.Buses[2]} }
func (t *Transformer3W) Rating() float64 { return t.Rate }
func (t *Transformer3W) sealed() {}

// FromTo returns the first two terminals of b.
func FromTo(b Branch) (from, to int) {
	terminals := b.Terminals()
	return terminals[0], terminals[1]
}

// SeriesReactance returns the reactance b contributes to the DC model.
func SeriesReactance(b Branch) (float64, error) {
	switch br := b.(type) {
	case *Line:
		return br.X, nil
	case *Transformer2W:
		return br.X, nil
	case *Transformer3W:
		return br.X[0], nil
	}
	return 0, fmt.Errorf("branch %d (%T): %w", b.Number(), b, ErrUnknownBranch)
}
