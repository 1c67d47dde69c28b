package grid

import "fmt"

type DiagnosticKind int

const (
	DiagThreeWindingApprox DiagnosticKind = iota + 1 // third winding not modeled
	DiagNoReference                                  // PTDF left undefined
	DiagMultipleReference                            // first reference bus used
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagThreeWindingApprox:
		return "three-winding-approximation"
	case DiagNoReference:
		return "no-reference-bus"
	case DiagMultipleReference:
		return "multiple-reference-buses"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a non-fatal finding made while assembling the network.
// Branch and Bus are zero when they do not apply.
type Diagnostic struct {
	Kind    DiagnosticKind
	Branch  int
	Bus     int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
