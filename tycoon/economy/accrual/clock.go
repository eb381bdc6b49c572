// Package accrual converts elapsed wall-clock time into gold at a per-hour rate.
package accrual

import (
	"math"
	"time"
)

// Uncapped disables the elapsed-time window; settlements triggered by a rate
// change use it.
var Uncapped = math.Inf(1)

// Result describes a single accrual computation.
type Result struct {
	Accrued      float64
	ElapsedHours float64 // wall-clock hours since the last settlement, never negative
	CountedHours float64 // hours actually paid out after the cap
	WasCapped    bool
	ClockSkew    bool // now was before lastSettlement; elapsed was clamped to zero
}

// ComputeAccrued returns min(elapsed, capHours) * ratePerHour. A capHours of zero,
// negative or +Inf means no cap. A negative rate accrues nothing.
func ComputeAccrued(lastSettlement, now time.Time, ratePerHour, capHours float64) Result {
	var res Result

	elapsed := now.Sub(lastSettlement)
	if elapsed < 0 {
		res.ClockSkew = true
		elapsed = 0
	}
	res.ElapsedHours = elapsed.Hours()

	res.CountedHours = res.ElapsedHours
	if capHours > 0 && !math.IsInf(capHours, 1) && res.ElapsedHours > capHours {
		res.CountedHours = capHours
		res.WasCapped = true
	}

	if ratePerHour > 0 {
		res.Accrued = res.CountedHours * ratePerHour
	}
	return res
}
