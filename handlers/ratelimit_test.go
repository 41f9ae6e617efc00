package handlers

import (
	"sync"
	"testing"
)

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter()
	ip := "127.0.0.1"

	// 1. Initial state: Allowed
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed initially")
	}

	// 2. Record 4 failures (less than maxAttempts=5)
	for i := 0; i < 4; i++ {
		limiter.RecordFailure(ip)
	}
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed after 4 failures")
	}

	// 3. Record 5th failure -> Should block
	limiter.RecordFailure(ip)
	if limiter.Allow(ip) {
		t.Errorf("Expected IP to be blocked after 5 failures")
	}

	// 4. Reset -> Should allow
	limiter.Reset(ip)
	if !limiter.Allow(ip) {
		t.Errorf("Expected IP to be allowed after reset")
	}
}

func TestRateLimiterParallel(t *testing.T) {
	limiter := newRateLimiter()
	ip := "10.0.0.1"

	var wg sync.WaitGroup
	// Simulate parallel requests
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.RecordFailure(ip)
		}()
	}
	wg.Wait()

	if limiter.Allow(ip) {
		t.Errorf("Expected IP to be blocked after concurrent failures")
	}
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	limiter := newRateLimiter()
	for i := 0; i < maxAttempts; i++ {
		limiter.RecordFailure("10.0.0.2")
	}

	if limiter.Allow("10.0.0.2") {
		t.Error("Expected the failing IP to be blocked")
	}
	if !limiter.Allow("10.0.0.3") {
		t.Error("Expected an unrelated IP to stay allowed")
	}
}
