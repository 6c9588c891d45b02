package response

import (
	"sync"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestChoiceIndex(t *testing.T) {
	keys := []string{"f", "J"}
	tests := []struct {
		key  string
		want int
	}{
		{"f", 0},
		{"F", 0},
		{"j", 1},
		{"J", 1},
		{"x", 0}, // lenient fallback
	}
	for _, tt := range tests {
		if got := ChoiceIndex(keys, tt.key); got != tt.want {
			t.Errorf("ChoiceIndex(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestCollector_SingleShot(t *testing.T) {
	c := NewCollector([]string{"f", "j"}, false)

	if c.Offer("j", t0) {
		t.Fatal("unarmed collector accepted a key")
	}

	c.Arm(t0)
	if c.Offer("k", t0.Add(100*time.Millisecond)) {
		t.Error("accepted a key outside the response set")
	}
	if !c.Offer("J", t0.Add(420*time.Millisecond)) {
		t.Fatal("expected J to be accepted")
	}
	if c.Offer("f", t0.Add(500*time.Millisecond)) {
		t.Error("single-shot collector accepted a second key")
	}

	r, ok := c.Take()
	if !ok {
		t.Fatal("expected pending response")
	}
	if r.Key != "j" || r.Choice != 1 || r.RawRT != 420*time.Millisecond || r.RawRTMs() != 420 {
		t.Errorf("unexpected response %+v", r)
	}
	if _, ok := c.Take(); ok {
		t.Error("response consumed twice")
	}
	if c.Rearm() {
		t.Error("single-shot collector must not re-arm")
	}

	acc, ign := c.Stats()
	if acc != 1 || ign != 3 {
		t.Errorf("stats = %d accepted, %d ignored; want 1, 3", acc, ign)
	}
}

func TestCollector_BufferedUntilTaken(t *testing.T) {
	c := NewCollector([]string{"f", "j"}, false)
	c.Arm(t0)
	c.Offer("f", t0.Add(time.Second))

	// Nothing consumes between ticks; the response must still be there
	r, ok := c.Take()
	if !ok || r.Key != "f" {
		t.Fatalf("buffered response lost: %+v, %v", r, ok)
	}
}

func TestCollector_DemoRearm(t *testing.T) {
	c := NewCollector([]string{"f", "j"}, true)
	c.Arm(t0)
	c.Offer("f", t0.Add(50*time.Millisecond))
	if c.Armed() {
		t.Error("collector should disarm after a response")
	}
	if !c.Rearm() {
		t.Fatal("demo collector should re-arm")
	}
	if _, ok := c.Take(); ok {
		t.Error("Rearm must drop the pending response")
	}
	if !c.Offer("j", t0.Add(900*time.Millisecond)) {
		t.Fatal("re-armed collector rejected a key")
	}
	r, _ := c.Take()
	if r.RawRT != 900*time.Millisecond {
		t.Errorf("raw RT must stay relative to the original origin, got %v", r.RawRT)
	}
}

func TestCollector_Disarm(t *testing.T) {
	c := NewCollector([]string{"f", "j"}, true)
	c.Arm(t0)
	c.Offer("f", t0)
	c.Disarm()
	if _, ok := c.Take(); ok {
		t.Error("Disarm must drop the pending response")
	}
	if c.Offer("j", t0) {
		t.Error("disarmed collector accepted a key")
	}
}

func TestCollector_ConcurrentOffers(t *testing.T) {
	c := NewCollector([]string{"f", "j"}, false)
	c.Arm(t0)

	var wg sync.WaitGroup
	accepted := make(chan bool, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "f"
			if i%2 == 1 {
				key = "j"
			}
			accepted <- c.Offer(key, t0.Add(time.Duration(i)*time.Millisecond))
		}(i)
	}
	wg.Wait()
	close(accepted)

	n := 0
	for ok := range accepted {
		if ok {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected exactly one accepted offer, got %d", n)
	}
}
