package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stockledger/internal/core/apperror"
	appctx "stockledger/internal/core/context"
	"stockledger/internal/core/id"
	"stockledger/internal/core/security"
	"stockledger/internal/core/types"
	"stockledger/internal/domain/ledger"
)

type staticProducts struct {
	info *ledger.ProductInfo
}

func (s *staticProducts) GetStockInfo(ctx context.Context, productID id.ID) (*ledger.ProductInfo, error) {
	return s.info, nil
}

type allowAllCenters struct{}

func (allowAllCenters) IsActive(ctx context.Context, ccID id.ID) (bool, error) { return true, nil }

type allowAllElements struct{}

func (allowAllElements) IsActive(ctx context.Context, ceID id.ID) (bool, error) { return true, nil }

type openWorkOrders struct{}

func (openWorkOrders) GetInfo(ctx context.Context, woID id.ID) (*ledger.WorkOrderInfo, error) {
	return &ledger.WorkOrderInfo{ID: woID, CostCenterID: id.New(), Open: true}, nil
}

func newEngine(store *Store) *ledger.Service {
	productID := id.MustParse("018f0000-0000-7000-8000-0000000000f1")
	products := &staticProducts{info: &ledger.ProductInfo{
		ID:       productID,
		SKU:      "WID-1",
		BaseUnit: "PCS",
		Cost:     types.MustMoney("2.00"),
		Active:   true,
	}}
	allocator := ledger.NewAllocator(allowAllCenters{}, allowAllElements{}, openWorkOrders{})
	return ledger.NewService(products, allocator, store, store)
}

func ownerCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "owner-1",
		Role:   security.RoleOwner,
	})
}

var engineProductID = id.MustParse("018f0000-0000-7000-8000-0000000000f1")

func TestStore_ConcurrentIssuesSerialize(t *testing.T) {
	store := NewStore()
	svc := newEngine(store)
	ctx := ownerCtx()

	_, err := svc.Execute(ctx, ledger.ReceiveInput{
		ProductID: engineProductID,
		Qty:       types.NewQuantityFromInt(100),
		Unit:      "PCS",
		UnitCost:  types.MustMoney("2.00"),
	})
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}

	issue := ledger.IssueInput{
		ProductID:     engineProductID,
		Qty:           types.NewQuantityFromInt(60),
		CostCenterID:  id.New(),
		CostElementID: id.New(),
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Execute(ctx, issue)
		}(i)
	}
	wg.Wait()

	var succeeded, shortages int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperror.IsInsufficientStock(err):
			shortages++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || shortages != 1 {
		t.Fatalf("want exactly one success and one shortage, got %d/%d", succeeded, shortages)
	}

	b, err := store.GetBalance(ctx, engineProductID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if b.OnHand != types.NewQuantityFromInt(40) {
		t.Errorf("final balance: want 40, got %s", b.OnHand)
	}

	_, total, err := store.ListMovements(ctx, ledger.MovementFilter{ProductID: &engineProductID})
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if total != 2 {
		t.Errorf("journal rows: want 2 (receive + one issue), got %d", total)
	}
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	productID := id.New()

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		b, err := store.GetBalanceForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		b.OnHand = types.NewQuantityFromInt(5)
		if err := store.SaveBalance(ctx, b); err != nil {
			return err
		}
		if err := store.InsertMovement(ctx, &ledger.StockMovement{ID: id.New(), ProductID: productID}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	b, _ := store.GetBalance(ctx, productID)
	if b.OnHand != 0 {
		t.Errorf("rolled back balance must stay 0, got %s", b.OnHand)
	}
	_, total, _ := store.ListMovements(ctx, ledger.MovementFilter{})
	if total != 0 {
		t.Errorf("rolled back journal must stay empty, got %d rows", total)
	}
}

func TestStore_LockTimeoutSurfacesConcurrencyError(t *testing.T) {
	store := NewStore()
	store.LockTimeout = 50 * time.Millisecond
	ctx := context.Background()
	productID := id.New()

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.RunInTransaction(ctx, func(ctx context.Context) error {
			if _, err := store.GetBalanceForUpdate(ctx, productID); err != nil {
				return err
			}
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := store.GetBalanceForUpdate(ctx, productID)
		return err
	})
	close(release)

	if !apperror.IsCode(err, apperror.CodeConcurrency) {
		t.Fatalf("want CONCURRENCY_ERROR, got %v", err)
	}
}

func TestStore_WritesVisibleOnlyAfterCommit(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	productID := id.New()

	err := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		b, err := store.GetBalanceForUpdate(txCtx, productID)
		if err != nil {
			return err
		}
		b.OnHand = types.NewQuantityFromInt(7)
		if err := store.SaveBalance(txCtx, b); err != nil {
			return err
		}

		// Uncommitted write must not be visible to plain readers.
		outside, err := store.GetBalance(ctx, productID)
		if err != nil {
			return err
		}
		if outside.OnHand != 0 {
			t.Errorf("uncommitted balance leaked: %s", outside.OnHand)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	b, _ := store.GetBalance(ctx, productID)
	if b.OnHand != types.NewQuantityFromInt(7) {
		t.Errorf("committed balance: want 7, got %s", b.OnHand)
	}
}
