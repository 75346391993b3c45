package draft

import (
	"move-booking/internal/models"
	"move-booking/pkg/utils"

	"github.com/samber/lo"
)

// ValidDraft is a draft whose required fields are all present and well formed.
type ValidDraft struct {
	Origin      models.Location
	Destination models.Location
	Vehicle     models.Vehicle
	DateTime    models.DateTime
	Distance    float64
	Duration    float64
	Items       []string
}

// Validate checks that a draft is ready for checkout. The store never calls
// it; callers run it before committing. Every problem found is reported in a
// single *models.ValidationError.
func Validate(d models.BookingDraft) (*ValidDraft, error) {
	var problems []string
	check := func(prefix string, v interface{}) {
		msgs := utils.ValidationMessages(utils.GetValidator().Engine().Struct(v))
		problems = append(problems, lo.Map(msgs, func(m string, _ int) string {
			return prefix + "." + m
		})...)
	}

	if d.Origin == nil {
		problems = append(problems, "origin is required")
	} else {
		check("origin", d.Origin)
	}
	if d.Destination == nil {
		problems = append(problems, "destination is required")
	} else {
		check("destination", d.Destination)
	}
	if d.Origin != nil && d.Destination != nil &&
		d.Origin.Latitude == d.Destination.Latitude &&
		d.Origin.Longitude == d.Destination.Longitude {
		problems = append(problems, "destination must differ from origin")
	}

	if d.SelectedVehicle == nil {
		problems = append(problems, "selected_vehicle is required")
	} else if d.SelectedVehicle.ID == "" {
		problems = append(problems, "selected_vehicle.id is required")
	}

	if d.DateTime == nil {
		problems = append(problems, "date_time is required")
	} else {
		check("date_time", d.DateTime)
	}

	if d.Duration == nil {
		problems = append(problems, "duration is required")
	} else if *d.Duration < 0 {
		problems = append(problems, "duration must not be negative")
	}
	if d.Distance != nil && *d.Distance < 0 {
		problems = append(problems, "distance must not be negative")
	}

	if len(problems) > 0 {
		return nil, &models.ValidationError{Problems: problems}
	}

	valid := &ValidDraft{
		Origin:      *d.Origin,
		Destination: *d.Destination,
		Vehicle:     *d.SelectedVehicle,
		DateTime:    *d.DateTime,
		Duration:    *d.Duration,
		Items:       cloneItems(d.Items),
	}
	if d.Distance != nil {
		valid.Distance = *d.Distance
	}
	return valid, nil
}
