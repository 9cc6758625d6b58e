package repository

import "context"

// NodeRepository читает и обновляет узлы OSM
type NodeRepository interface {
	// GetNode возвращает сырой payload узла, пустой при ошибке
	GetNode(ctx context.Context, nodeID int64) []byte

	// UpdateNode отправляет новый payload узла
	UpdateNode(ctx context.Context, nodeID int64, payload []byte) error
}
