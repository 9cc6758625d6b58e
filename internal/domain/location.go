package domain

import (
	"encoding/json"
	"fmt"
)

// Mode - источник текущей локации
type Mode int

const (
	// Automatic - локация приходит от позиционирования устройства
	Automatic Mode = iota
	// Manual - локация задана пользователем
	Manual
)

func (m Mode) String() string {
	switch m {
	case Automatic:
		return "automatic"
	case Manual:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "automatic":
		*m = Automatic
	case "manual":
		*m = Manual
	default:
		return fmt.Errorf("unknown location mode %q", s)
	}
	return nil
}

// Location - текущая точка пользователя, всегда заполнена полностью
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Mode      Mode    `json:"mode"`
}

// ValidCoordinates проверяет диапазоны широты и долготы
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
