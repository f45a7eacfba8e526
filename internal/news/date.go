package news

import (
	"fmt"
	"math"
	"time"
)

// DefaultDateLayout renders absolute dates as year/month/day without padding.
const DefaultDateLayout = "2006/1/2"

// DateLabel describes t relative to now. The day distance is the absolute
// difference rounded up, so anything within the last 24h is "today".
func DateLabel(now, t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 1:
		return "today"
	case days == 2:
		return "yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	default:
		return t.Format(layout)
	}
}
