package domain

// StreamPositionUpdates - поток позиций устройства по умолчанию
const StreamPositionUpdates = "stream:position:updates"

// Причины отказа позиционирования в потоке
const (
	PositionErrorPermissionDenied = "permission_denied"
	PositionErrorUnavailable      = "unavailable"
)

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

// PositionEvent - событие позиционирования: координаты либо причина отказа
type PositionEvent struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// IsFailure - событие сообщает об отказе позиционирования
func (e PositionEvent) IsFailure() bool {
	return e.Error != "" || e.Latitude == nil || e.Longitude == nil
}
