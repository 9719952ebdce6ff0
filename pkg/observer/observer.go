// Package observer defines the hook the Shrink-Wrap controller calls into
// at well-defined points of each outer cycle, replacing the original's
// compile-time debug-dump flag with an ordinary dependency-injected
// interface.
package observer

import "gonum.org/v1/gonum/mat"

// Observer receives progress notifications from the controller. All
// methods must return promptly; the controller calls them synchronously
// on its own goroutine and does not buffer or drop notifications.
type Observer interface {
	// OnCycleBegin fires once per outer cycle, before the mask update, with
	// the blur scale that will be used for that cycle's mask.
	OnCycleBegin(cycle int, sigma float64)

	// OnHioStep fires once per inner HIO iteration. It is informational
	// only; the controller's convergence decision never depends on it.
	OnHioStep(cycle, hioStep int, maskedError float64)

	// OnCycleEnd fires once per outer cycle, after the convergence test,
	// with the cycle's final masked-norm error, the mask used, and the
	// current object-space estimate.
	OnCycleEnd(cycle int, maskedError float64, mask, estimate *mat.Dense)
}

// NoopObserver discards every notification. It is the controller's
// zero-value default, matching a reconstruction run with the original's
// debug dump flag left off.
type NoopObserver struct{}

func (NoopObserver) OnCycleBegin(cycle int, sigma float64)                                {}
func (NoopObserver) OnHioStep(cycle, hioStep int, maskedError float64)                    {}
func (NoopObserver) OnCycleEnd(cycle int, maskedError float64, mask, estimate *mat.Dense) {}
