package store

import (
	"context"
	"testing"

	"github.com/hmtran/storefront/internal/model"
)

func TestSaveCart_LoadCart_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, err := s.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("GetProduct() failed: %v", err)
	}
	p2, err := s.GetProduct(ctx, 2)
	if err != nil {
		t.Fatalf("GetProduct() failed: %v", err)
	}

	want := []model.CartLine{
		{Product: p1, Quantity: 2},
		{Product: p2, Quantity: 1},
	}
	if err := s.SaveCart(ctx, want); err != nil {
		t.Fatalf("SaveCart() failed: %v", err)
	}

	got, err := s.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d mismatch: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestSaveCart_ReplacesPreviousStash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, _ := s.GetProduct(ctx, 1)
	p2, _ := s.GetProduct(ctx, 2)

	if err := s.SaveCart(ctx, []model.CartLine{{Product: p1, Quantity: 5}}); err != nil {
		t.Fatalf("first SaveCart() failed: %v", err)
	}
	if err := s.SaveCart(ctx, []model.CartLine{{Product: p2, Quantity: 1}}); err != nil {
		t.Fatalf("second SaveCart() failed: %v", err)
	}

	got, err := s.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart() failed: %v", err)
	}
	if len(got) != 1 || got[0].Product.ID != 2 {
		t.Errorf("stash not replaced: %+v", got)
	}
}

func TestLoadCart_DropsDeletedProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, _ := s.GetProduct(ctx, 1)
	if err := s.SaveCart(ctx, []model.CartLine{{Product: p1, Quantity: 1}}); err != nil {
		t.Fatalf("SaveCart() failed: %v", err)
	}
	if err := s.DeleteProduct(ctx, 1); err != nil {
		t.Fatalf("DeleteProduct() failed: %v", err)
	}

	got, err := s.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected stale line dropped, got %+v", got)
	}
}

func TestClearCartRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, _ := s.GetProduct(ctx, 1)
	if err := s.SaveCart(ctx, []model.CartLine{{Product: p1, Quantity: 1}}); err != nil {
		t.Fatalf("SaveCart() failed: %v", err)
	}
	if err := s.ClearCartRows(ctx); err != nil {
		t.Fatalf("ClearCartRows() failed: %v", err)
	}

	got, err := s.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("cart not cleared: %+v", got)
	}
}
