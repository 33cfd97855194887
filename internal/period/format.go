package period

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatHours renders hours with two decimals
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FormatMoney renders an amount with two decimals and no grouping
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatMoneyGrouped renders an amount with thousands separators for display
func FormatMoneyGrouped(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

// FormatElapsed renders end-start as HH:MM:SS, never negative
func FormatElapsed(start, end time.Time) string {
	total := int(end.Sub(start) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatDate renders a range boundary
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders a session timestamp
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 2 3:04 PM")
}

// FormatSince renders t relative to ref, e.g. "2 hours ago"
func FormatSince(t, ref time.Time) string {
	return humanize.RelTime(t, ref, "ago", "from now")
}
