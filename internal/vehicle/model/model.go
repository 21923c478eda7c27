package model

import "time"

type Vehicle struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Modified *time.Time `json:"modified"`
}

type ServiceType struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Modified *time.Time `json:"modified"`
}

// ServiceInterval is the maintenance cadence for one (vehicle, service type)
// pair. Dates are stored as YYYY-MM-DD strings.
type ServiceInterval struct {
	VehicleID   int64      `json:"vehicle_id"`
	ServiceID   int64      `json:"service_id"`
	Months      *int64     `json:"months"`
	Miles       *int64     `json:"miles"`
	Notes       *string    `json:"notes"`
	NextDate    *string    `json:"next_date"`
	NextMiles   *int64     `json:"next_miles"`
	ServiceName string     `json:"service_name,omitempty"`
	VehicleName string     `json:"vehicle_name,omitempty"`
	Modified    *time.Time `json:"modified"`
}

type ServiceLogEntry struct {
	ID           int64      `json:"id"`
	VehicleID    int64      `json:"vehicle_id"`
	ServiceID    int64      `json:"service_id"`
	ServiceDate  string     `json:"service_date"`
	ServiceMiles *int64     `json:"service_miles"`
	Notes        *string    `json:"notes"`
	Qty          *int64     `json:"qty"`
	ServiceName  string     `json:"service_name,omitempty"`
	VehicleName  string     `json:"vehicle_name,omitempty"`
	Modified     *time.Time `json:"modified"`
}
