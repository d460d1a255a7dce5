package input

import "fmt"

// Coefficient is the complex weight of one operator term in a JSON-friendly
// shape.
type Coefficient struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// PauliTerm is one weighted term of an operator: a label of single-character
// factors (I, X, Y, Z), one per qubit, and its coefficient.
type PauliTerm struct {
	Label string      `json:"label"`
	Coeff Coefficient `json:"coeff"`
}

// Operator is a weighted sum of Pauli terms. Its numeric payload is opaque to
// the framework; the evaluation backend interprets it.
type Operator struct {
	Paulis []PauliTerm `json:"paulis"`
}

// Qubits returns the qubit count implied by the term labels.
func (o Operator) Qubits() int {
	n := 0
	for _, term := range o.Paulis {
		if len(term.Label) > n {
			n = len(term.Label)
		}
	}
	return n
}

// Validate checks the operator holds at least one term with consistent labels.
func (o Operator) Validate() error {
	if len(o.Paulis) == 0 {
		return fmt.Errorf("operator has no terms")
	}
	width := len(o.Paulis[0].Label)
	for i, term := range o.Paulis {
		if len(term.Label) != width {
			return fmt.Errorf("operator term %d: label %q does not match width %d", i, term.Label, width)
		}
		for _, c := range term.Label {
			switch c {
			case 'I', 'X', 'Y', 'Z':
			default:
				return fmt.Errorf("operator term %d: label %q contains invalid factor %q", i, term.Label, string(c))
			}
		}
	}
	return nil
}

// Diagonal reports whether every term is built from I and Z factors only.
func (o Operator) Diagonal() bool {
	for _, term := range o.Paulis {
		for _, c := range term.Label {
			if c != 'I' && c != 'Z' {
				return false
			}
		}
	}
	return true
}
