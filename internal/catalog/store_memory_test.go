package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func storeIDs(t *testing.T, s *MemStore) []int {
	t.Helper()

	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	out := make([]int, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemStore_NextIDAfterDelete(t *testing.T) {
	cases := []struct {
		strategy IDStrategy
		want     []int
	}{
		{IDMaxPlusOne, []int{1, 3, 4, 5}},
		// length+1 hands out 4 again once anything was removed
		{IDLength, []int{1, 3, 4, 4}},
	}

	for _, tc := range cases {
		t.Run(string(tc.strategy), func(t *testing.T) {
			ctx := context.Background()
			s := NewMemStore(SeedProducts(), tc.strategy)

			if err := s.Delete(ctx, 2); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.Create(ctx, Product{Name: "new"}); err != nil {
				t.Fatalf("create: %v", err)
			}

			if got := storeIDs(t, s); !equalIDs(got, tc.want) {
				t.Fatalf("ids=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestMemStore_CreateOnEmpty(t *testing.T) {
	for _, strategy := range []IDStrategy{IDMaxPlusOne, IDLength} {
		s := NewMemStore(nil, strategy)

		p, err := s.Create(context.Background(), Product{ID: 77, Name: "first"})
		if err != nil {
			t.Fatalf("%s create: %v", strategy, err)
		}
		if p.ID != 1 {
			t.Fatalf("%s id=%d want=1", strategy, p.ID)
		}
	}
}

func TestMemStore_UpdateFirstMatchInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(SeedProducts(), IDLength)

	_ = s.Delete(ctx, 2)
	_, _ = s.Create(ctx, Product{Name: "dup"}) // ids now 1,3,4,4

	p, err := s.Update(ctx, 4, Product{ID: 9, Name: "replaced"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.ID != 4 {
		t.Fatalf("id=%d want=4", p.ID)
	}

	items, _ := s.List(ctx)
	if items[2].Name != "replaced" || items[3].Name != "dup" {
		t.Fatalf("names=%q,%q", items[2].Name, items[3].Name)
	}
}

func TestMemStore_DeleteShiftsFollowing(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(SeedProducts(), IDMaxPlusOne)

	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := storeIDs(t, s); !equalIDs(got, []int{2, 3, 4}) {
		t.Fatalf("ids=%v", got)
	}
	if n, _ := s.Len(ctx); n != 3 {
		t.Fatalf("len=%d", n)
	}
}

func TestMemStore_MissingIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(SeedProducts(), IDMaxPlusOne)

	if _, err := s.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get err=%v", err)
	}
	if _, err := s.Update(ctx, 99, Product{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err=%v", err)
	}

	err := s.Delete(ctx, 99)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != 99 {
		t.Fatalf("delete err=%v", err)
	}
}

func TestMemStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(SeedProducts(), IDMaxPlusOne)

	items, _ := s.List(ctx)
	items[0].Features[0] = "mutated"
	items[0].Name = "mutated"

	p, _ := s.Get(ctx, 1)
	if p.Name == "mutated" || p.Features[0] == "mutated" {
		t.Fatalf("store shares memory with caller: %+v", p)
	}
}

func TestMemStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(SeedProducts(), IDMaxPlusOne)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, Product{Name: "p"})
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, id := range storeIDs(t, s) {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 4+n {
		t.Fatalf("len=%d want=%d", len(seen), 4+n)
	}
}

func TestParseIDStrategy(t *testing.T) {
	for in, want := range map[string]IDStrategy{"": IDMaxPlusOne, "max": IDMaxPlusOne, "length": IDLength} {
		got, err := ParseIDStrategy(in)
		if err != nil || got != want {
			t.Fatalf("ParseIDStrategy(%q)=%q,%v", in, got, err)
		}
	}
	if _, err := ParseIDStrategy("random"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
