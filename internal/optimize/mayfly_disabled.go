//go:build nomayfly

package optimize

import "fmt"

func mayflyAvailable() bool {
	return false
}

func newMayflyBuilder(maxIters, population int, seed int64) Optimizer {
	return unavailableMayfly{}
}

// unavailableMayfly stands in when the external library is excluded from the
// build. The registry never hands it out; lookup reports the variant as
// unavailable first.
type unavailableMayfly struct{}

func (unavailableMayfly) Name() string {
	return "Mayfly"
}

func (unavailableMayfly) Capabilities() Capabilities {
	return Capabilities{}
}

func (unavailableMayfly) Optimize(p *Problem) (*Result, error) {
	return nil, fmt.Errorf("mayfly optimizer is not compiled into this build")
}
