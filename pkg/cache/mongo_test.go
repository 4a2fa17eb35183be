package cache

import (
	"testing"
	"time"
)

func TestMongoEntryExpiry(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	e := newMongoEntry("k", []byte("v"), time.Hour, now)
	if e.ExpiresAt == nil || !e.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ExpiresAt = %v, want %v", e.ExpiresAt, now.Add(time.Hour))
	}
	if e.expired(now.Add(30 * time.Minute)) {
		t.Error("entry should not be expired before its ttl")
	}
	if !e.expired(now.Add(2 * time.Hour)) {
		t.Error("entry should be expired after its ttl")
	}

	forever := newMongoEntry("k", []byte("v"), 0, now)
	if forever.ExpiresAt != nil {
		t.Error("zero ttl should not set an expiry")
	}
	if forever.expired(now.Add(100 * 365 * 24 * time.Hour)) {
		t.Error("entry without expiry should never expire")
	}
}
