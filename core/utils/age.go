package utils

import (
	"fmt"
	"time"
)

// SyncStaleness renders how long ago a user's FIO data was synced:
// "never", "just now", "5m ago", "2h ago", "yesterday" or "3 days ago".
func SyncStaleness(last *time.Time, now time.Time) string {
	if last == nil || last.IsZero() {
		return "never"
	}
	seconds := now.Sub(*last).Seconds()
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", int(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", int(seconds/3600))
	case seconds < 172800:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", int(seconds/86400))
	}
}

// PriceAge renders the age of the freshest exchange quote:
// "never synced", "just now", "5m ago", "2h ago" or "3d ago".
func PriceAge(last *time.Time, now time.Time) string {
	if last == nil || last.IsZero() {
		return "never synced"
	}
	seconds := now.Sub(*last).Seconds()
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", int(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", int(seconds/3600))
	default:
		return fmt.Sprintf("%dd ago", int(seconds/86400))
	}
}
