package models

import "time"

// FilterToken selects a reporting period.
type FilterToken string

const (
	FilterAll    FilterToken = "all"
	FilterMonth  FilterToken = "month"
	FilterWeek   FilterToken = "week"
	FilterYear   FilterToken = "year"
	FilterCustom FilterToken = "custom"
)

// PeriodFilter is what the admin picked in the UI. Start and End are YYYY-MM-DD and only
// meaningful for FilterCustom.
type PeriodFilter struct {
	Token FilterToken `form:"filter" json:"filter"`
	Start string      `form:"start" json:"start,omitempty"`
	End   string      `form:"end" json:"end,omitempty"`
}

// Interval is an inclusive range of instants.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the interval, both ends included.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Period is a resolved filter: the label to display and the bounds, nil for "all".
type Period struct {
	Filter   PeriodFilter `json:"filter"`
	Label    string       `json:"label"`
	Interval *Interval    `json:"interval,omitempty"`
}

// BookingSummary holds the revenue statistics of a set of bookings. Amounts are whole IDR.
type BookingSummary struct {
	TotalRevenue      int64 `json:"totalRevenue"`
	PaidBookingCount  int   `json:"paidBookingCount"`
	AverageOrderValue int64 `json:"averageOrderValue"`
	TotalBookingCount int   `json:"totalBookingCount"`
}

// BookingReport is a filtered booking list together with its summary.
type BookingReport struct {
	RequestID uint64         `json:"requestId"`
	Period    Period         `json:"period"`
	Summary   BookingSummary `json:"summary"`
	Bookings  []Booking      `json:"bookings"`
}

// DashboardSummary is the landing view of the admin dashboard.
type DashboardSummary struct {
	TotalTrips      int64        `json:"totalTrips"`
	TotalBookings   int          `json:"totalBookings"`
	PendingBookings int          `json:"pendingBookings"`
	TotalRevenue    int64        `json:"totalRevenue"`
	RecentBookings  []Booking    `json:"recentBookings"`
	Schedule        TripSchedule `json:"schedule"`
}

// TripSchedule splits recent bookings by trip date relative to today.
type TripSchedule struct {
	Today     []Booking `json:"today"`
	Tomorrow  []Booking `json:"tomorrow"`
	Completed []Booking `json:"completed"`
}
