package worker

import (
	"context"
)

// Worker - долгоживущий компонент сервиса с собственным циклом
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении, повторный вызов безопасен
	Stop() error

	Name() string
}
