package models

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

type AgeGroup string

const (
	AgeGroupChildren AgeGroup = "children"
	AgeGroupAdults   AgeGroup = "adults"
	AgeGroupAll      AgeGroup = "all"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentConfirmed EnrollmentStatus = "confirmed"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// ActiveEnrollmentStatuses hold a seat and block a second booking of the same course.
var ActiveEnrollmentStatuses = []EnrollmentStatus{EnrollmentPending, EnrollmentConfirmed}

// IsActive reports whether s occupies a seat.
func (s EnrollmentStatus) IsActive() bool {
	return s == EnrollmentPending || s == EnrollmentConfirmed
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Complete is true when every field is filled; partial contacts are not stored.
func (c EmergencyContact) Complete() bool {
	return c.Name != "" && c.Phone != "" && c.Relationship != ""
}

type MedicalInfo struct {
	HasConditions bool     `json:"hasConditions"`
	Conditions    []string `json:"conditions,omitempty"`
	Allergies     []string `json:"allergies,omitempty"`
	Medications   []string `json:"medications,omitempty"`
}
