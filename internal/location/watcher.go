package location

import "context"

// Position - координаты от позиционирования устройства
type Position struct {
	Latitude  float64
	Longitude float64
}

// Watcher - возможность позиционирования платформы.
// Повторы сигнала при сбоях - ответственность самого Watcher.
type Watcher interface {
	// Available сообщает, доступно ли позиционирование вообще
	Available() bool

	// Watch запускает непрерывное наблюдение. Колбэки вызываются с горутины наблюдателя
	// до вызова stop.
	Watch(ctx context.Context, onPosition func(Position), onError func(error)) (stop func(), err error)
}
