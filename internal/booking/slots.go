package booking

import "fmt"

// Business hours: first appointment 10:00am, last 5:00pm, half-hour
// increments in between.
const (
	openingHour = 10
	closingHour = 18
)

// Slots returns the fixed list of offered time-of-day labels.
func Slots() []string {
	var slots []string
	for hour := openingHour; hour < closingHour; hour++ {
		slots = append(slots, slotLabel(hour, 0))
		if hour < closingHour-1 {
			slots = append(slots, slotLabel(hour, 30))
		}
	}
	return slots
}

func ValidSlot(s string) bool {
	for _, slot := range Slots() {
		if slot == s {
			return true
		}
	}
	return false
}

func slotLabel(hour, minute int) string {
	suffix := "am"
	display := hour
	if hour >= 12 {
		suffix = "pm"
		if hour > 12 {
			display = hour - 12
		}
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, suffix)
}
