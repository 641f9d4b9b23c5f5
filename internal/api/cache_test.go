package api

import (
	"context"
	"testing"
	"time"

	"clutchly/internal/config"

	"github.com/rs/zerolog"
)

func TestNewCache_FallsBackToNop(t *testing.T) {
	tests := []struct {
		name     string
		redisURL string
		wantErr  bool
	}{
		{"unset", "", false},
		{"unreachable", "redis://127.0.0.1:1/0", false},
		{"malformed", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, client, err := NewCache(&config.Config{RedisURL: tt.redisURL}, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if client != nil {
				t.Error("NewCache() returned a client for a disabled cache")
			}
			if _, ok, err := cache.Get(context.Background(), "k"); ok || err != nil {
				t.Errorf("nop Get() = %v, %v", ok, err)
			}
		})
	}
}

func TestNewPacer(t *testing.T) {
	p := NewPacer(&config.Config{MatchPacing: 20 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Errorf("3 waits took %v, want at least 2 intervals", elapsed)
	}

	unpaced := NewPacer(&config.Config{})
	start = time.Now()
	for i := 0; i < 100; i++ {
		unpaced.Wait(ctx)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("zero pacing should not delay")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := p.Wait(cancelled); err == nil {
		t.Error("Wait() on a cancelled context should fail")
	}
}
