// Package memory keeps repositories in process memory. Contents are lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/leonid6372/stock-trader/internal/common/domain"
)

type operationsRepository struct {
	mu         sync.RWMutex
	operations map[int64][]*domain.Operation // map[user_id]operations, oldest first
}

func NewOperationsRepository() domain.OperationsRepository {
	return &operationsRepository{
		operations: make(map[int64][]*domain.Operation),
	}
}

func (or *operationsRepository) SaveOperation(_ context.Context, operation *domain.Operation) error {
	op := *operation

	or.mu.Lock()
	or.operations[op.UserID] = append(or.operations[op.UserID], &op)
	or.mu.Unlock()

	return nil
}

func (or *operationsRepository) GetOperationsPagesCount(_ context.Context, userID int64) (int64, error) {
	or.mu.RLock()
	count := int64(len(or.operations[userID]))
	or.mu.RUnlock()

	return domain.PagesCount(count, domain.OperationsPerPage), nil
}

// GetOperationsByPage returns the page-th group of operations, newest first.
func (or *operationsRepository) GetOperationsByPage(_ context.Context, userID, page int64) ([]*domain.Operation, error) {
	if page < 1 {
		page = 1
	}

	or.mu.RLock()
	defer or.mu.RUnlock()

	all := or.operations[userID]
	operations := []*domain.Operation{}

	start := int64(len(all)) - 1 - (page-1)*domain.OperationsPerPage
	for i := start; i >= 0 && i > start-domain.OperationsPerPage; i-- {
		op := *all[i]
		operations = append(operations, &op)
	}

	return operations, nil
}
