package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leonid6372/stock-trader/internal/common/domain"
	"github.com/shopspring/decimal"
)

func TestOperationsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationsRepository()
	start := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	total := domain.OperationsPerPage + 3
	for i := 0; i < total; i++ {
		if err := repo.SaveOperation(ctx, &domain.Operation{
			ID:          uuid.New(),
			UserID:      42,
			Type:        domain.OperationTypeBuy,
			Symbol:      "AAPL",
			Count:       int64(i + 1),
			Price:       decimal.NewFromInt(150),
			TotalAmount: decimal.NewFromInt(150 * int64(i+1)),
			CreatedAt:   start.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("SaveOperation() failed: %v", err)
		}
	}

	pages, err := repo.GetOperationsPagesCount(ctx, 42)
	if err != nil || pages != 2 {
		t.Fatalf("GetOperationsPagesCount() = %d, %v, want 2", pages, err)
	}

	first, err := repo.GetOperationsByPage(ctx, 42, 1)
	if err != nil {
		t.Fatalf("GetOperationsByPage(1) failed: %v", err)
	}
	if len(first) != domain.OperationsPerPage {
		t.Fatalf("page 1 has %d operations, want %d", len(first), domain.OperationsPerPage)
	}
	if first[0].Count != int64(total) {
		t.Errorf("page 1 starts with count %d, want newest %d", first[0].Count, total)
	}

	second, err := repo.GetOperationsByPage(ctx, 42, 2)
	if err != nil {
		t.Fatalf("GetOperationsByPage(2) failed: %v", err)
	}
	if len(second) != 3 || second[2].Count != 1 {
		t.Errorf("page 2 = %d operations ending with count %d, want 3 ending with 1", len(second), second[len(second)-1].Count)
	}

	empty, err := repo.GetOperationsByPage(ctx, 7, 1)
	if err != nil || len(empty) != 0 {
		t.Errorf("unknown user page = %v, %v, want empty", empty, err)
	}

	beyond, err := repo.GetOperationsByPage(ctx, 42, 5)
	if err != nil || len(beyond) != 0 {
		t.Errorf("page beyond end = %v, %v, want empty", beyond, err)
	}
}

func TestOperationsRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationsRepository()

	op := &domain.Operation{ID: uuid.New(), UserID: 1, Symbol: "AAPL", Count: 1}
	if err := repo.SaveOperation(ctx, op); err != nil {
		t.Fatal(err)
	}
	op.Count = 99

	got, _ := repo.GetOperationsByPage(ctx, 1, 1)
	if len(got) != 1 || got[0].Count != 1 {
		t.Errorf("stored operation changed with the caller's copy: %+v", got)
	}
}
