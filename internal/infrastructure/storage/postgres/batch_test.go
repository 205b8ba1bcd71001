package postgres

import (
	"context"
	"testing"
)

func TestBatchHelpers_RequireTransaction(t *testing.T) {
	txManager := &TxManager{opts: DefaultTxOptions()}
	ctx := context.Background()

	inserter := NewBatchInserter(txManager)
	if _, err := inserter.CopyFromSlice(ctx, "products", []string{"id"}, nil); err == nil {
		t.Error("CopyFromSlice outside a transaction should fail")
	}

	executor := NewBatchExecutor(txManager)
	err := executor.ExecuteBatch(ctx, []BatchQuery{
		{SQL: "INSERT INTO products (id) VALUES ($1)", Args: []any{"x"}},
	})
	if err == nil {
		t.Error("ExecuteBatch outside a transaction should fail")
	}
}
