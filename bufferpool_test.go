package nnclient

import "testing"

func TestBufferPoolReuse(t *testing.T) {
	pool := NewBufferPool(2)

	buf := pool.Get()
	buf.WriteString("hello")
	pool.Put(buf)

	reused := pool.Get()
	if reused != buf {
		t.Error("Get() did not hand back the pooled buffer")
	}
	if reused.Len() != 0 {
		t.Errorf("pooled buffer length = %d, want 0 after reset", reused.Len())
	}
}

func TestBufferPoolNeverBlocks(t *testing.T) {
	pool := NewBufferPool(1)

	// checkout from an empty pool allocates
	a, b := pool.Get(), pool.Get()
	if a == nil || b == nil {
		t.Fatal("Get() returned nil")
	}

	// returns beyond capacity are dropped, not queued
	pool.Put(a)
	pool.Put(b)

	if got := pool.Get(); got != a {
		t.Error("Get() did not return the retained buffer first")
	}
	if got := pool.Get(); got == b {
		t.Error("Get() returned a buffer the pool should have dropped")
	}
}
