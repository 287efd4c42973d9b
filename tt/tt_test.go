package tt

import (
	"sync"
	"testing"
)

func TestInsertGetRoundTrip(t *testing.T) {
	table := NewWithBits(10)
	entry := Entry{Depth: TagDepth(7, false), Score: -1234, Age: 3}
	table.Insert(42, entry)

	got, ok := table.Get(42)
	if !ok {
		t.Fatal("Get returned ok=false after Insert")
	}
	if got != entry {
		t.Errorf("Get = %+v, want %+v", got, entry)
	}
}

func TestGetMissReturnsNotOK(t *testing.T) {
	table := NewWithBits(10)
	if _, ok := table.Get(99); ok {
		t.Error("Get on an empty slot returned ok=true")
	}
}

func TestGetRejectsHashCollision(t *testing.T) {
	table := NewWithBits(4) // capacity 16
	h1 := uint64(5)
	h2 := h1 + table.Capacity() // same slot index, different hash

	table.Insert(h1, Entry{Depth: TagDepth(3, false), Score: 10, Age: 1})
	if _, ok := table.Get(h2); ok {
		t.Error("Get(h2) succeeded despite h1/h2 colliding on the same slot with a different hash")
	}
	// The original insert must still be intact.
	got, ok := table.Get(h1)
	if !ok || got.Score != 10 {
		t.Errorf("Get(h1) = %+v, ok=%v; want Score=10, ok=true", got, ok)
	}
}

func TestTagDepthSplitDepthRoundTrip(t *testing.T) {
	for _, zw := range []bool{true, false} {
		tagged := TagDepth(11, zw)
		depth, wasPV := SplitDepth(tagged)
		if depth != 11 {
			t.Errorf("SplitDepth(%d): depth = %d, want 11", tagged, depth)
		}
		if wasPV != !zw {
			t.Errorf("SplitDepth(%d): wasPV = %v, want %v", tagged, wasPV, !zw)
		}
	}
}

func TestAlwaysReplace(t *testing.T) {
	table := NewWithBits(4)
	table.Insert(7, Entry{Depth: TagDepth(1, false), Score: 100, Age: 1})
	table.Insert(7, Entry{Depth: TagDepth(9, false), Score: -50, Age: 2})

	got, ok := table.Get(7)
	if !ok {
		t.Fatal("Get after second insert returned ok=false")
	}
	if got.Score != -50 || got.Age != 2 {
		t.Errorf("Get = %+v, want the second insert's values", got)
	}
}

// TestConcurrentInsertsNeverCorrupt checks the lock-free contract:
// concurrent inserts to the same slot may interleave, but a concurrent
// Get must never observe a torn mix of one insert's hash with another's
// depth/score — it returns ok=false instead.
func TestConcurrentInsertsNeverCorrupt(t *testing.T) {
	table := NewWithBits(4)
	const slot = 3
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(age uint32) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					table.Insert(slot, Entry{Depth: TagDepth(int64(age), false), Score: int32(age) * 7, Age: age})
				}
			}
		}(uint32(w + 1))
	}

	for i := 0; i < 2000; i++ {
		if entry, ok := table.Get(slot); ok {
			if entry.Score != int32(entry.Age)*7 {
				close(stop)
				wg.Wait()
				t.Fatalf("torn read observed: %+v", entry)
			}
		}
	}
	close(stop)
	wg.Wait()
}
