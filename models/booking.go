package models

import "time"

// PaymentStatus is the closed set of booking payment states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Valid reports whether s is one of the known payment states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// BookingSource tags where a booking came from.
type BookingSource string

const (
	SourceManual  BookingSource = "manual"
	SourceWebsite BookingSource = "website"
)

func (s BookingSource) Valid() bool {
	return s == SourceManual || s == SourceWebsite
}

// CustomPackageID marks an ad-hoc itinerary that is not backed by a catalog package.
const CustomPackageID = "custom"

// Booking is a reservation of a trip package (or custom itinerary) for a group of guests.
// PackageName is a snapshot taken at creation time and is not kept in sync with the catalog.
type Booking struct {
	ID            string        `json:"id" bson:"id" firestore:"-"`
	GuestName     string        `json:"guestName" bson:"guestName" firestore:"guestName"`
	GuestPhone    string        `json:"guestPhone" bson:"guestPhone" firestore:"guestPhone"`
	GuestEmail    string        `json:"guestEmail,omitempty" bson:"guestEmail,omitempty" firestore:"guestEmail,omitempty"`
	PackageID     string        `json:"packageId" bson:"packageId" firestore:"packageId"`
	PackageName   string        `json:"packageName" bson:"packageName" firestore:"packageName"`
	Pax           int           `json:"pax" bson:"pax" firestore:"pax"`
	TripDate      string        `json:"tripDate" bson:"tripDate" firestore:"tripDate"` // YYYY-MM-DD
	TotalAmount   int64         `json:"totalAmount" bson:"totalAmount" firestore:"totalAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus" firestore:"paymentStatus"`
	Source        BookingSource `json:"source" bson:"source" firestore:"source"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`

	// Only set when PackageID == CustomPackageID.
	CustomDuration   string `json:"customDuration,omitempty" bson:"customDuration,omitempty" firestore:"customDuration,omitempty"`
	CustomLocation   string `json:"customLocation,omitempty" bson:"customLocation,omitempty" firestore:"customLocation,omitempty"`
	CustomFeatures   string `json:"customFeatures,omitempty" bson:"customFeatures,omitempty" firestore:"customFeatures,omitempty"`
	CustomExclusions string `json:"customExclusions,omitempty" bson:"customExclusions,omitempty" firestore:"customExclusions,omitempty"`
	CustomItinerary  string `json:"customItinerary,omitempty" bson:"customItinerary,omitempty" firestore:"customItinerary,omitempty"`
}

func (b *Booking) SetID(id string) { b.ID = id }

// IsCustom reports whether the booking is for an ad-hoc itinerary.
func (b *Booking) IsCustom() bool { return b.PackageID == CustomPackageID }

// ManualBookingInput is the admin manual-entry form.
type ManualBookingInput struct {
	GuestName         string        `json:"guestName"`
	GuestPhone        string        `json:"guestPhone"`
	GuestEmail        string        `json:"guestEmail"`
	PackageID         string        `json:"packageId"`
	CustomPackageName string        `json:"customPackageName"`
	Pax               int           `json:"pax"`
	TripDate          string        `json:"tripDate"`
	TotalAmount       int64         `json:"totalAmount"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	Notes             string        `json:"notes"`

	CustomDuration   string `json:"customDuration"`
	CustomLocation   string `json:"customLocation"`
	CustomFeatures   string `json:"customFeatures"`
	CustomExclusions string `json:"customExclusions"`
	CustomItinerary  string `json:"customItinerary"`
}

// StatusUpdateRequest carries a whole-field payment status change.
type StatusUpdateRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required"`
}
