package clock

import (
	"math"
	"time"

	"github.com/goodsign/monday"
)

// Readout is the digital clock text.
type Readout struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// DigitalReadout formats now as a long date and an hour:minute:second time.
func DigitalReadout(now time.Time, loc Locale) Readout {
	return Readout{
		Time: monday.Format(now, loc.TimeLayout, loc.names),
		Date: monday.Format(now, loc.DateLayout, loc.names),
	}
}

// Angles are clock-hand positions in radians, clockwise from twelve.
type Angles struct {
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
}

// AnalogAngles returns the hand angles for now. Sub-unit motion is kept:
// seconds move the minute hand, minutes and seconds move the hour hand.
func AnalogAngles(now time.Time) Angles {
	h := float64(now.Hour() % 12)
	m := float64(now.Minute())
	s := float64(now.Second())

	return Angles{
		Hour:   h*math.Pi/6 + m*math.Pi/360 + s*math.Pi/21600,
		Minute: m*math.Pi/30 + s*math.Pi/1800,
		Second: s * math.Pi / 30,
	}
}
