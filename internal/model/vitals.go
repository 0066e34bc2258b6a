package model

import "time"

// VitalSigns is a single reading from a vitals source. Readings are
// display data only and are never persisted to the store.
type VitalSigns struct {
	HeartRate        int       `json:"heartRate"`
	Systolic         int       `json:"systolic"`
	Diastolic        int       `json:"diastolic"`
	Glucose          int       `json:"glucose"`
	OxygenSaturation int       `json:"oxygenSaturation"`
	Steps            int       `json:"steps"`
	MeasuredAt       time.Time `json:"measuredAt"`
}

type AlertLevel string

const (
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

// VitalAlert flags a reading outside its clinical range.
type VitalAlert struct {
	Metric  string     `json:"metric"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}
