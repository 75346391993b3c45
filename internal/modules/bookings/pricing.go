package bookings

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"move-booking/internal/models"
)

// priceLabel matches catalog prices such as "$99/hour", "$149.50 / hr" or a flat "$150".
var priceLabel = regexp.MustCompile(`^\$?\s*(\d+(?:\.\d+)?)\s*(?:/\s*(hour|hr|h))?$`)

// QuotePrice prices a booking from the vehicle's price label and the route
// duration in seconds. Hourly rates bill whole hours, rounded up, with a one
// hour minimum. Flat prices ignore the duration.
func QuotePrice(label string, durationSeconds float64) (float64, error) {
	m := priceLabel.FindStringSubmatch(strings.ToLower(strings.TrimSpace(label)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidPrice, label)
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidPrice, label)
	}
	if m[2] == "" {
		return rate, nil
	}

	hours := math.Ceil(durationSeconds / time.Hour.Seconds())
	if hours < 1 {
		hours = 1
	}
	return math.Round(rate*hours*100) / 100, nil
}

// FormatPrice renders an amount the way the app shows it.
func FormatPrice(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

const (
	firstSlotHour = 8
	lastSlotHour  = 17 // the last slot starts at 5 PM
)

// TimeSlots lists the hourly slot labels offered for a date in YYYY-MM-DD form.
func TimeSlots(date string) ([]string, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		start := day.Add(time.Duration(h) * time.Hour)
		end := start.Add(time.Hour)
		slots = append(slots, start.Format("3:04 PM")+" - "+end.Format("3:04 PM"))
	}
	return slots, nil
}
