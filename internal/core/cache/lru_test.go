package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_EvictsOldest(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a") // a becomes most-recent
	c.Put("c", 3)     // should evict b

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a present, got %v ok=%v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len=%d", c.Len())
	}
}

func TestLRU_PutReplaces(t *testing.T) {
	type key struct {
		path string
		size int64
	}
	c := NewLRU[key, []string](4)
	c.Put(key{"a.rs", 10}, []string{"old"})
	c.Put(key{"a.rs", 10}, []string{"new"})
	c.Put(key{"a.rs", 11}, []string{"grown"})

	if v, _ := c.Get(key{"a.rs", 10}); len(v) != 1 || v[0] != "new" {
		t.Fatalf("got %v", v)
	}
	if c.Len() != 2 {
		t.Fatalf("len=%d", c.Len())
	}
}

func TestLRU_NilNeverHits(t *testing.T) {
	var c *LRU[string, int]
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok || c.Len() != 0 {
		t.Fatal("nil cache hit")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[string, int](8)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				k := fmt.Sprintf("k%d", (i+j)%20)
				c.Put(k, j)
				_, _ = c.Get(k)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 8 {
		t.Fatalf("len=%d", c.Len())
	}
}
