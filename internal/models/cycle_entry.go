package models

import (
	"strings"
	"time"
)

type CycleEntry struct {
	ID        uint        `gorm:"primaryKey"`
	Date      time.Time   `gorm:"type:date;not null;uniqueIndex:uidx_cycle_entries_date"`
	IsPeriod  bool        `gorm:"not null;default:false"`
	FlowLevel FlowLevel   `gorm:"column:flow_level;not null;default:none"`
	Mood      Mood        `gorm:"not null"`
	Cramps    CrampsLevel `gorm:"not null;default:none"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CycleEntry) TableName() string {
	return "cycle_entries"
}

func (entry CycleEntry) HasAnySymptoms() bool {
	return entry.IsPeriod || entry.Mood != MoodNone || (entry.Cramps != "" && entry.Cramps != CrampsNone)
}

func (entry CycleEntry) HasData() bool {
	if entry.HasAnySymptoms() {
		return true
	}
	if strings.TrimSpace(entry.Notes) != "" {
		return true
	}
	return entry.FlowLevel != "" && entry.FlowLevel != FlowNone
}

// Valid reports whether every level field holds a known value.
func (entry CycleEntry) Valid() bool {
	return entry.FlowLevel.Valid() && entry.Mood.Valid() && entry.Cramps.Valid()
}
