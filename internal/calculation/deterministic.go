package calculation

import "time"

// nowFunc stamps reports and anchors projections that carry no start date.
var nowFunc = time.Now

// SetNowFunc replaces the engine clock and returns a func that restores the
// previous one. A nil f selects time.Now.
func SetNowFunc(f func() time.Time) (restore func()) {
	prev := nowFunc
	if f == nil {
		f = time.Now
	}
	nowFunc = f
	return func() { nowFunc = prev }
}
