// Package vitals produces vital-sign readings for the health-stats
// display. The source is an interface so the simulated generator can
// be swapped for a real device feed without touching callers.
package vitals

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/healthmaster/healthmaster-go/internal/model"
)

// Source yields one reading per call.
type Source interface {
	Read(ctx context.Context) (model.VitalSigns, error)
}

// Simulated ranges, inclusive.
const (
	heartRateMin, heartRateMax = 60, 100
	systolicMin, systolicMax   = 100, 150
	diastolicMin, diastolicMax = 60, 95
	glucoseMin, glucoseMax     = 70, 200
	oxygenMin, oxygenMax       = 95, 100
	stepsMin, stepsMax         = 1000, 10000
)

// Simulated is a randomized source for demo and development use.
type Simulated struct {
	rng *rand.Rand
	now func() time.Time
}

func NewSimulated(seed int64) *Simulated {
	return &Simulated{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (s *Simulated) Read(_ context.Context) (model.VitalSigns, error) {
	return model.VitalSigns{
		HeartRate:        s.between(heartRateMin, heartRateMax),
		Systolic:         s.between(systolicMin, systolicMax),
		Diastolic:        s.between(diastolicMin, diastolicMax),
		Glucose:          s.between(glucoseMin, glucoseMax),
		OxygenSaturation: s.between(oxygenMin, oxygenMax),
		Steps:            s.between(stepsMin, stepsMax),
		MeasuredAt:       s.now().UTC(),
	}, nil
}

func (s *Simulated) between(min, max int) int {
	return s.rng.Intn(max-min+1) + min
}

// Evaluate flags readings outside their clinical ranges. At most one
// alert is returned per reading, highest-priority metric first.
func Evaluate(v model.VitalSigns) []model.VitalAlert {
	switch {
	case v.HeartRate > 100 || v.HeartRate < 60:
		return []model.VitalAlert{{
			Metric:  "heartRate",
			Level:   model.AlertLevelCritical,
			Message: fmt.Sprintf("heart rate at %d bpm", v.HeartRate),
		}}
	case v.Systolic > 140 || v.Diastolic > 90:
		return []model.VitalAlert{{
			Metric:  "bloodPressure",
			Level:   model.AlertLevelWarning,
			Message: fmt.Sprintf("blood pressure elevated at %d/%d mmHg", v.Systolic, v.Diastolic),
		}}
	case v.Glucose > 180 || v.Glucose < 70:
		return []model.VitalAlert{{
			Metric:  "glucose",
			Level:   model.AlertLevelCritical,
			Message: fmt.Sprintf("glucose level critical at %d mg/dL", v.Glucose),
		}}
	case v.OxygenSaturation < 95:
		return []model.VitalAlert{{
			Metric:  "oxygenSaturation",
			Level:   model.AlertLevelWarning,
			Message: fmt.Sprintf("low oxygen saturation at %d%%", v.OxygenSaturation),
		}}
	default:
		return nil
	}
}
