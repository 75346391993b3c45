package models

// Location is a geocoded point picked on the map screen.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Address   string  `json:"address" validate:"required"`
}

// Vehicle is one entry of the vehicle catalog.
type Vehicle struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Type     string `json:"type" db:"type"`
	Capacity string `json:"capacity" db:"capacity"`
	Price    string `json:"price" db:"price"` // e.g. "$99/hour"
}

// DateTime is the day and slot chosen on the calendar screen.
type DateTime struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required"` // slot label, e.g. "9:00 AM - 10:00 AM"
}

// BookingDraft is the in-progress booking a user assembles across the wizard.
// Every field is optional until set.
type BookingDraft struct {
	Origin          *Location `json:"origin"`
	Destination     *Location `json:"destination"`
	SelectedVehicle *Vehicle  `json:"selected_vehicle"`
	DateTime        *DateTime `json:"date_time"`
	Distance        *float64  `json:"distance"`
	Duration        *float64  `json:"duration"`
	Items           []string  `json:"items"`
}

// FinalizedBooking is a snapshot of a draft taken at commit time.
type FinalizedBooking struct {
	Origin          *Location `json:"origin"`
	Destination     *Location `json:"destination"`
	SelectedVehicle *Vehicle  `json:"selected_vehicle"`
	DateTime        *DateTime `json:"date_time"`
	Distance        *float64  `json:"distance"`
	Duration        *float64  `json:"duration"`
}

// SetLocationRequest is the body of PUT /draft/origin and PUT /draft/destination.
// A null location clears the field.
type SetLocationRequest struct {
	Location *Location `json:"location" validate:"omitempty"`
}

// SetVehicleRequest selects a catalog vehicle by id. A null id clears the selection.
type SetVehicleRequest struct {
	VehicleID *string `json:"vehicle_id" validate:"omitempty,min=1"`
}

// SetDateTimeRequest is the body of PUT /draft/datetime.
type SetDateTimeRequest struct {
	DateTime *DateTime `json:"date_time" validate:"omitempty"`
}

// SetItemsRequest replaces the checklist wholesale.
type SetItemsRequest struct {
	Items []string `json:"items" validate:"dive,required,max=200"`
}

// SetDistanceRequest sets the route distance in meters. Null clears it.
type SetDistanceRequest struct {
	Distance *float64 `json:"distance" validate:"omitempty,gte=0"`
}

// SetDurationRequest sets the route duration in seconds. Null clears it.
type SetDurationRequest struct {
	Duration *float64 `json:"duration" validate:"omitempty,gte=0"`
}

// SetMetricsRequest sets route distance and duration directly.
type SetMetricsRequest struct {
	Distance *float64 `json:"distance" validate:"omitempty,gte=0"`
	Duration *float64 `json:"duration" validate:"omitempty,gte=0"`
}
