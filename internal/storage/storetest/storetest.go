// Package storetest holds the behaviour every ledger.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
	"moneytracker/internal/ledger"
)

// Factory returns an empty store; Run closes it when the subtest ends.
type Factory func(t *testing.T) ledger.Store

func Tx(owner, amount string, kind core.Kind, category, date string) core.Transaction {
	return core.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Kind:     kind,
		Category: category,
		Date:     date,
		Owner:    owner,
	}
}

// Same reports whether a and b carry equal field values.
func Same(a, b core.Transaction) bool {
	return a.ID == b.ID &&
		a.Amount.Equal(b.Amount) &&
		a.Kind == b.Kind &&
		a.Category == b.Category &&
		a.Date == b.Date &&
		a.Owner == b.Owner
}

func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s ledger.Store)
	}{
		{"create then get round trips", testRoundTrip},
		{"ids are unique and fresh", testFreshIDs},
		{"other owner sees nothing", testIsolation},
		{"list is inclusive on both bounds", testListBounds},
		{"list honours a single bound", testListOneSided},
		{"list keeps insertion order", testListOrder},
		{"list for unknown owner is empty", testListEmpty},
		{"update replaces fields", testUpdate},
		{"update of missing pair is a no-op", testUpdateMissing},
		{"delete is physical and reports absence", testDelete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func mustCreate(t *testing.T, s ledger.Store, tx core.Transaction) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), tx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

func testRoundTrip(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	in := Tx("alice", "123.45", core.Expense, "Food", "2025-07-03")
	id := mustCreate(t, s, in)
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, ok, err := s.Get(ctx, id, "alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	want := in
	want.ID = id
	if !Same(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func testFreshIDs(t *testing.T, s ledger.Store) {
	a := mustCreate(t, s, Tx("alice", "1", core.Income, "A", "2025-07-01"))
	b := mustCreate(t, s, Tx("bob", "2", core.Income, "B", "2025-07-01"))
	if _, err := s.Delete(context.Background(), b, "bob"); err != nil {
		t.Fatal(err)
	}
	c := mustCreate(t, s, Tx("alice", "3", core.Income, "C", "2025-07-01"))
	if a == b || b == c || a == c {
		t.Fatalf("ids must be unique, got %d %d %d", a, b, c)
	}
}

func testIsolation(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	id := mustCreate(t, s, Tx("bob", "10", core.Expense, "Fuel", "2025-07-01"))

	if _, ok, err := s.Get(ctx, id, "alice"); err != nil || ok {
		t.Fatalf("alice must not read bob's record: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Update(ctx, id, "alice", Tx("alice", "99", core.Income, "X", "2025-07-02")); err != nil || ok {
		t.Fatalf("alice must not update bob's record: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Delete(ctx, id, "alice"); err != nil || ok {
		t.Fatalf("alice must not delete bob's record: ok=%v err=%v", ok, err)
	}
	list, err := s.List(ctx, "alice", core.Filter{})
	if err != nil || len(list) != 0 {
		t.Fatalf("alice list must be empty: %v %v", list, err)
	}

	got, ok, err := s.Get(ctx, id, "bob")
	if err != nil || !ok || !got.Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("bob's record must be untouched: %+v ok=%v err=%v", got, ok, err)
	}
}

func testListBounds(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	mustCreate(t, s, Tx("alice", "1", core.Expense, "A", "2025-06-30"))
	first := mustCreate(t, s, Tx("alice", "2", core.Expense, "A", "2025-07-01"))
	last := mustCreate(t, s, Tx("alice", "3", core.Expense, "A", "2025-07-31"))
	mustCreate(t, s, Tx("alice", "4", core.Expense, "A", "2025-08-01"))

	got, err := s.List(ctx, "alice", core.Filter{Start: "2025-07-01", End: "2025-07-31"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != first || got[1].ID != last {
		t.Fatalf("expected the two July records, got %+v", got)
	}
}

func testListOneSided(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	mustCreate(t, s, Tx("alice", "1", core.Expense, "A", "2025-06-30"))
	mustCreate(t, s, Tx("alice", "2", core.Expense, "A", "2025-07-15"))

	from, err := s.List(ctx, "alice", core.Filter{Start: "2025-07-01"})
	if err != nil || len(from) != 1 || from[0].Date != "2025-07-15" {
		t.Fatalf("start only: %+v %v", from, err)
	}
	until, err := s.List(ctx, "alice", core.Filter{End: "2025-07-01"})
	if err != nil || len(until) != 1 || until[0].Date != "2025-06-30" {
		t.Fatalf("end only: %+v %v", until, err)
	}
}

func testListOrder(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	var ids []int64
	for _, d := range []string{"2025-07-09", "2025-07-01", "2025-07-05"} {
		ids = append(ids, mustCreate(t, s, Tx("alice", "1", core.Income, "A", d)))
	}
	for round := 0; round < 2; round++ {
		got, err := s.List(ctx, "alice", core.Filter{})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 records, got %d", len(got))
		}
		for i := range ids {
			if got[i].ID != ids[i] {
				t.Fatalf("round %d: expected insertion order %v, got %+v", round, ids, got)
			}
		}
	}
}

func testListEmpty(t *testing.T, s ledger.Store) {
	got, err := s.List(context.Background(), "nobody", core.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func testUpdate(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	id := mustCreate(t, s, Tx("alice", "5", core.Expense, "Food", "2025-07-01"))

	ok, err := s.Update(ctx, id, "alice", Tx("alice", "7.25", core.Income, "Gift", "2025-07-02"))
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	got, _, err := s.Get(ctx, id, "alice")
	if err != nil {
		t.Fatal(err)
	}
	want := Tx("alice", "7.25", core.Income, "Gift", "2025-07-02")
	want.ID = id
	if !Same(got, want) {
		t.Fatalf("update mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func testUpdateMissing(t *testing.T, s ledger.Store) {
	ok, err := s.Update(context.Background(), 404, "alice", Tx("alice", "1", core.Income, "A", "2025-07-01"))
	if err != nil || ok {
		t.Fatalf("expected false, nil; got %v %v", ok, err)
	}
}

func testDelete(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	id := mustCreate(t, s, Tx("alice", "5", core.Expense, "Food", "2025-07-01"))

	ok, err := s.Delete(ctx, id, "alice")
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	ok, err = s.Delete(ctx, id, "alice")
	if err != nil || ok {
		t.Fatalf("second delete must report absence: ok=%v err=%v", ok, err)
	}
	if _, found, _ := s.Get(ctx, id, "alice"); found {
		t.Fatal("deleted record still readable")
	}

	for i := 0; i < 2; i++ {
		ok, err := s.Delete(ctx, 999, "ghost")
		if err != nil || ok {
			t.Fatalf("delete of never-existing pair, call %d: ok=%v err=%v", i+1, ok, err)
		}
	}
}
