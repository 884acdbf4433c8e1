package utils

import (
	"fmt"
	"time"
)

// FormatRemaining renders a cooldown duration as "1h 5m" / "4m 12s".
func FormatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatPoints renders a point total with the star currency marker.
func FormatPoints(points int64) string {
	return fmt.Sprintf("%d 🌟", points)
}

// FormatAuthor renders a card author as a handle.
func FormatAuthor(author string) string {
	return "@" + author
}
