package datehelper

import "time"

const Layout = "2006-01-02"

// TodayString returns the current date formatted 'YYYY-MM-DD', the grouping
// key stored alongside every match.
func TodayString() string {
	return time.Now().Format(Layout)
}

// DateString formats an instant with the same layout.
func DateString(t time.Time) string {
	return t.Format(Layout)
}
