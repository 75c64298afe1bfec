package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked telemedicine consultation
type Appointment struct {
	BaseModel
	UserID     string            `gorm:"size:36;index" json:"userId"`
	DoctorName string            `gorm:"size:255;not null" json:"doctorName"`
	Specialty  string            `gorm:"size:100" json:"specialty"`
	Date       string            `gorm:"size:10" json:"date"` // yyyy-mm-dd
	Time       string            `gorm:"size:5" json:"time"`  // HH:MM
	Notes      string            `gorm:"type:text" json:"notes"`
	Status     AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
