package models

import (
	"encoding/json"
	"slices"
)

// WeatherSnapshot is one OneCall response: the current reading plus up to 48 hourly entries,
// index 0 being the next hour.
type WeatherSnapshot struct {
	Current CurrentReading  `json:"current"`
	Hourly  []HourlyReading `json:"hourly"`
}

type CurrentReading struct {
	Temp       float64            `json:"temp" example:"21.4"`
	Pressure   int                `json:"pressure" example:"1014"`
	Humidity   int                `json:"humidity" example:"63"`
	UVI        float64            `json:"uvi" example:"4.2"`
	WindSpeed  float64            `json:"wind_speed" example:"3.6"`
	Conditions []WeatherCondition `json:"weather"`
	Rain       *RainAmount        `json:"rain,omitempty"`
}

type HourlyReading struct {
	Temp       float64            `json:"temp" example:"19.8"`
	UVI        float64            `json:"uvi" example:"0.7"`
	WindSpeed  float64            `json:"wind_speed" example:"2.9"`
	Conditions []WeatherCondition `json:"weather"`
	Rain       *RainAmount        `json:"rain,omitempty"`
}

type WeatherCondition struct {
	Main string `json:"main" example:"Clouds"`
	Icon string `json:"icon,omitempty" example:"04d"`
}

// RainAmount holds millimetres accumulated in the trailing hour. A nil *RainAmount means no rain.
type RainAmount struct {
	OneHour *float64 `json:"1h,omitempty" example:"0.42"`
}

func (r *RainAmount) Millimeters() float64 {
	if r == nil || r.OneHour == nil {
		return 0
	}
	return *r.OneHour
}

func (r *RainAmount) clone() *RainAmount {
	if r == nil {
		return nil
	}
	out := &RainAmount{}
	if r.OneHour != nil {
		mm := *r.OneHour
		out.OneHour = &mm
	}
	return out
}

func (c CurrentReading) RainMillimeters() float64 {
	return c.Rain.Millimeters()
}

func (h HourlyReading) RainMillimeters() float64 {
	return h.Rain.Millimeters()
}

// Clone returns a copy that shares no memory with h.
func (h HourlyReading) Clone() HourlyReading {
	h.Conditions = slices.Clone(h.Conditions)
	h.Rain = h.Rain.clone()
	return h
}

// MarshalJSON writes nil sequences as [] so the output always carries the fields a decoder
// requires. Decoding gives back nil for an empty array.
func (s WeatherSnapshot) MarshalJSON() ([]byte, error) {
	type plain WeatherSnapshot
	if s.Hourly == nil {
		s.Hourly = []HourlyReading{}
	}
	return json.Marshal(plain(s))
}

func (c CurrentReading) MarshalJSON() ([]byte, error) {
	type plain CurrentReading
	if c.Conditions == nil {
		c.Conditions = []WeatherCondition{}
	}
	return json.Marshal(plain(c))
}

func (h HourlyReading) MarshalJSON() ([]byte, error) {
	type plain HourlyReading
	if h.Conditions == nil {
		h.Conditions = []WeatherCondition{}
	}
	return json.Marshal(plain(h))
}
