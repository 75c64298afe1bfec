package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores an ordered list of strings as a JSON column.
// Used for schedule weekday names and "HH:MM" dose times.
type StringList []string

// Value implements driver.Valuer for GORM serialization.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for GORM deserialization.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether the list holds the given entry.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Medication represents a prescribed medication with its recurring dose schedule
type Medication struct {
	BaseModel
	UserID       string     `gorm:"size:36;index" json:"userId"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Dosage       string     `gorm:"size:100" json:"dosage"`
	Instructions string     `gorm:"type:text" json:"instructions"`
	ScheduleDays StringList `gorm:"type:json" json:"scheduleDays"`  // weekday names, order-insignificant
	Times        StringList `gorm:"type:json" json:"scheduleTimes"` // "HH:MM" times, order preserved
	PillsLeft    int        `gorm:"default:0" json:"pillsLeft"`
	TotalPills   int        `gorm:"default:0" json:"totalPills"`
	RefillAt     int        `gorm:"default:0" json:"refillAt"`
	LastRefill   *time.Time `json:"lastRefill,omitempty"`
	Price        float64    `json:"price"`
	PrescribedBy string     `gorm:"size:255" json:"prescribedBy"`

	// Dose history in insertion order (not necessarily chronological)
	History []DoseEvent `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE" json:"history,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NeedsRefill reports whether the inventory has reached the reorder threshold.
func (m *Medication) NeedsRefill() bool {
	return m.PillsLeft <= m.RefillAt
}

// DoseStatus represents the lifecycle state of a single dose
type DoseStatus string

const (
	DoseUpcoming DoseStatus = "upcoming"
	DoseTaken    DoseStatus = "taken"
	DoseMissed   DoseStatus = "missed"
)

// DoseEvent represents one scheduled administration of a medication.
// TakenTime is set if and only if Status is DoseTaken.
type DoseEvent struct {
	BaseModel
	MedicationID  string     `gorm:"size:36;index" json:"medicationId"`
	ScheduledTime time.Time  `gorm:"not null" json:"scheduledTime"`
	TakenTime     *time.Time `json:"takenTime,omitempty"`
	Status        DoseStatus `gorm:"size:20;default:'upcoming'" json:"status"`
}

// MarkTaken transitions the event to the taken state at the given moment.
func (d *DoseEvent) MarkTaken(now time.Time) {
	d.Status = DoseTaken
	d.TakenTime = &now
}
