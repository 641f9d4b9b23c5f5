package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"clutchly/internal/config"
	"clutchly/internal/domain"

	"github.com/rs/zerolog"
)

type fakeSyncer struct {
	calls []string
	errs  map[string]error
}

func (f *fakeSyncer) Sync(_ context.Context, playerID string) (*domain.SyncResult, error) {
	f.calls = append(f.calls, playerID)
	if err := f.errs[playerID]; err != nil {
		return nil, err
	}
	return &domain.SyncResult{PlayerID: playerID, MatchesProcessed: 3}, nil
}

type fakeLister struct {
	players   []domain.PlayerProfile
	cutoff    time.Time
	limit     int
	err       error
	attempted []string
}

func (f *fakeLister) ListStale(_ context.Context, cutoff time.Time, limit int) ([]domain.PlayerProfile, error) {
	f.cutoff, f.limit = cutoff, limit
	return f.players, f.err
}

func (f *fakeLister) MarkSyncAttempt(_ context.Context, id string, _ time.Time) error {
	f.attempted = append(f.attempted, id)
	return nil
}

func TestRunOnce_ContinuesPastFailures(t *testing.T) {
	syncer := &fakeSyncer{errs: map[string]error{
		"b": domain.ErrNoRankedHistory,
		"c": errors.New("db locked"),
	}}
	lister := &fakeLister{players: []domain.PlayerProfile{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	cfg := &config.Config{SyncSchedule: "@every 1h", SyncStaleAfter: 6 * time.Hour}
	s := New(cfg, syncer, lister, zerolog.Nop())

	before := time.Now().UTC()
	synced, failed := s.RunOnce(context.Background())

	if synced != 2 || failed != 2 {
		t.Errorf("RunOnce() = %d synced, %d failed, want 2, 2", synced, failed)
	}
	if len(syncer.calls) != 4 || syncer.calls[3] != "d" {
		t.Errorf("sync calls = %v", syncer.calls)
	}
	if len(lister.attempted) != 4 {
		t.Errorf("attempts recorded = %v, want all four players", lister.attempted)
	}
	if lister.limit != 50 {
		t.Errorf("limit = %d, want 50", lister.limit)
	}
	if d := before.Sub(lister.cutoff); d < 6*time.Hour || d > 6*time.Hour+time.Minute {
		t.Errorf("cutoff is %v before now, want about 6h", d)
	}
}

func TestRunOnce_ListFailure(t *testing.T) {
	syncer := &fakeSyncer{}
	s := New(&config.Config{}, syncer, &fakeLister{err: errors.New("boom")}, zerolog.Nop())

	if synced, failed := s.RunOnce(context.Background()); synced != 0 || failed != 0 || len(syncer.calls) != 0 {
		t.Errorf("RunOnce() = %d, %d with %d calls", synced, failed, len(syncer.calls))
	}
}

func TestRunOnce_StopsOnCancelledContext(t *testing.T) {
	syncer := &fakeSyncer{}
	lister := &fakeLister{players: []domain.PlayerProfile{{ID: "a"}, {ID: "b"}}}
	s := New(&config.Config{}, syncer, lister, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)

	if len(syncer.calls) != 0 {
		t.Errorf("sync calls = %v, want none", syncer.calls)
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
		enabled  bool
	}{
		{"off", false, false},
		{"", false, false},
		{"@every 6h", false, true},
		{"*/15 * * * *", false, true},
		{"whenever", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			s := New(&config.Config{SyncSchedule: tt.schedule}, &fakeSyncer{}, &fakeLister{}, zerolog.Nop())
			if s.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", s.Enabled(), tt.enabled)
			}
			err := s.Start()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err := s.Stop(context.Background()); err != nil {
				t.Errorf("Stop() error = %v", err)
			}
		})
	}
}
