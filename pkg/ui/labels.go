package ui

import (
	"fmt"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
)

// Lang selects the HUD language
type Lang int

const (
	Turkish Lang = iota
	English
)

// Toggle switches between the two languages
func (l Lang) Toggle() Lang {
	if l == Turkish {
		return English
	}
	return Turkish
}

var densityLabels = map[Lang]map[traffic.Density]string{
	Turkish: {
		traffic.DensityLow:    "Az Yoğun",
		traffic.DensityMedium: "Orta Yoğun",
		traffic.DensityHigh:   "Çok Yoğun",
	},
	English: {
		traffic.DensityLow:    "Light",
		traffic.DensityMedium: "Moderate",
		traffic.DensityHigh:   "Heavy",
	},
}

// DensityLabel returns the button text for d
func DensityLabel(d traffic.Density, lang Lang) string {
	if label, ok := densityLabels[lang][d]; ok {
		return label
	}
	return d.String()
}

// DirectionLabel describes the barrier input
func DirectionLabel(d barrier.Direction, lang Lang) string {
	if lang == Turkish {
		switch d {
		case barrier.DirectionReverse:
			return "Sola"
		case barrier.DirectionForward:
			return "Sağa"
		}
		return "Kapalı"
	}
	switch d {
	case barrier.DirectionReverse:
		return "Left"
	case barrier.DirectionForward:
		return "Right"
	}
	return "Closed"
}

// StatusLine summarises the barrier state for the HUD
func StatusLine(s barrier.State, lang Lang) string {
	moving := "idle"
	if s.Moving() {
		moving = "moving"
	}
	if lang == Turkish {
		moving = "durgun"
		if s.Moving() {
			moving = "hareketli"
		}
	}
	return fmt.Sprintf("%s  %s  %s", s.Status(), DirectionLabel(s.Direction(), lang), moving)
}
