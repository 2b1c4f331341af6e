package SRJet

import (
	"fmt"

	"go.uber.org/atomic"
)

// Diagnostics counts per cell numerical fallbacks. A boundary fill never
// fails, it clamps and counts instead. Counters are safe to bump from the
// parallel fill.
type Diagnostics struct {
	RootNotBracketed    atomic.Int64
	RootNotConverged    atomic.Int64
	LorentzFactorClamps atomic.Int64
	AxisRadiusClamps    atomic.Int64
	AlignmentsSkipped   atomic.Int64
}

func (d *Diagnostics) Total() int64 {
	return d.RootNotBracketed.Load() + d.RootNotConverged.Load() +
		d.LorentzFactorClamps.Load() + d.AxisRadiusClamps.Load() +
		d.AlignmentsSkipped.Load()
}

func (d *Diagnostics) Reset() {
	d.RootNotBracketed.Store(0)
	d.RootNotConverged.Store(0)
	d.LorentzFactorClamps.Store(0)
	d.AxisRadiusClamps.Store(0)
	d.AlignmentsSkipped.Store(0)
}

func (d *Diagnostics) String() string {
	return fmt.Sprintf("unbracketed roots = %d, unconverged roots = %d, "+
		"Lorentz factor clamps = %d, axis radius clamps = %d, skipped alignments = %d",
		d.RootNotBracketed.Load(), d.RootNotConverged.Load(),
		d.LorentzFactorClamps.Load(), d.AxisRadiusClamps.Load(),
		d.AlignmentsSkipped.Load())
}
