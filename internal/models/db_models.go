package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Surname  string `gorm:"not null" json:"surname"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:text;not null;default:student;index" json:"role"`
	Age          int    `gorm:"not null" json:"age"`

	EmergencyContact datatypes.JSONType[EmergencyContact] `gorm:"type:jsonb" json:"emergencyContact"`
	MedicalInfo      datatypes.JSONType[MedicalInfo]      `gorm:"type:jsonb" json:"medicalInfo"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InstructorRef is the slice of a User exposed on a course listing.
type InstructorRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type Course struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Description  string      `gorm:"type:text;not null" json:"description"`
	Level        CourseLevel `gorm:"type:text;not null" json:"level"`
	AgeGroup     AgeGroup    `gorm:"type:text;not null" json:"ageGroup"`
	Duration     int         `gorm:"not null" json:"duration"` // minutes
	MaxStudents  int         `gorm:"not null" json:"maxStudents"`
	Price        float64     `gorm:"not null" json:"price"`
	InstructorID string      `gorm:"size:36;not null;index" json:"instructorId"`
	Instructor   *User       `gorm:"foreignKey:InstructorID;references:ID" json:"-"`
	IsActive     bool        `gorm:"default:true;index" json:"isActive"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	ImageKey     string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	// populated from Instructor before the course is returned
	InstructorInfo *InstructorRef `gorm:"-" json:"instructor,omitempty"`
}

// AttachInstructor fills InstructorInfo from a loaded Instructor association.
func (c *Course) AttachInstructor() {
	if c.Instructor != nil {
		c.InstructorInfo = &InstructorRef{ID: c.Instructor.ID, Name: c.Instructor.Name, Surname: c.Instructor.Surname}
	}
}

type Schedule struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CourseID  string    `gorm:"size:36;not null;index" json:"courseId"`
	Course    *Course   `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"` // 0 = Sunday
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	IsActive  bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	StudentID string `gorm:"size:36;not null;index;uniqueIndex:idx_enrollments_active_student_course,where:status = 'pending' OR status = 'confirmed'" json:"studentId"`
	CourseID  string `gorm:"size:36;not null;index;uniqueIndex:idx_enrollments_active_student_course,where:status = 'pending' OR status = 'confirmed'" json:"courseId"`
	Course    *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`

	ScheduleID string    `gorm:"size:36;not null;index:idx_enrollments_schedule_status" json:"scheduleId"`
	Schedule   *Schedule `gorm:"foreignKey:ScheduleID;references:ID" json:"schedule,omitempty"`

	Status         EnrollmentStatus `gorm:"type:text;not null;default:pending;index:idx_enrollments_schedule_status" json:"status"`
	EnrollmentDate time.Time        `gorm:"not null;index" json:"enrollmentDate"`
	PaymentStatus  PaymentStatus    `gorm:"type:text;not null;default:pending" json:"paymentStatus"`
	PaymentAmount  float64          `gorm:"not null" json:"paymentAmount"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Pool struct {
	ID                  string    `gorm:"primaryKey;size:36" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Description         string    `gorm:"type:text" json:"description,omitempty"`
	Length              float64   `gorm:"not null" json:"length"` // metres
	Width               float64   `gorm:"not null" json:"width"`
	Depth               float64   `gorm:"not null" json:"depth"`
	Temperature         float64   `gorm:"not null" json:"temperature"` // celsius
	Capacity            int       `gorm:"not null" json:"capacity"`
	IsActive            bool      `gorm:"default:true;index" json:"isActive"`
	MaintenanceSchedule string    `json:"maintenanceSchedule,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"userId"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}
