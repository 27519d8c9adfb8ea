package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PruneStale removes every room whose last activity is older than the cutoff,
// along with its member sessions, and returns the removed room IDs so the
// caller can emit lobby deltas outside the lock. This is the only path that
// reclaims rooms whose members vanished without a clean disconnect.
func (r *Registry) PruneStale(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned []string
	for roomID, room := range r.rooms {
		if !room.LastActivity.Before(cutoff) {
			continue
		}
		log.Info().Str("module", "app.reaper").
			Str("room_id", roomID).
			Dur("inactive_for", time.Since(room.LastActivity)).
			Int("removed_peers", len(room.PeerIDs)).
			Msg("pruned stale room")
		r.removeRoom(room)
		pruned = append(pruned, roomID)
	}
	return pruned
}

// Reaper periodically evicts stale rooms. It is the only long-lived
// background task; the server cancels it and waits on Done during shutdown.
type Reaper struct {
	registry   *Registry
	interval   time.Duration
	staleAfter time.Duration
	onPruned   func(roomID string)
	done       chan struct{}
}

func NewReaper(registry *Registry, interval, staleAfter time.Duration, onPruned func(roomID string)) *Reaper {
	return &Reaper{
		registry:   registry,
		interval:   interval,
		staleAfter: staleAfter,
		onPruned:   onPruned,
		done:       make(chan struct{}),
	}
}

func (p *Reaper) Run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reaper").Msg("reaper stopped")
			return
		case <-ticker.C:
			for _, roomID := range p.registry.PruneStale(time.Now().Add(-p.staleAfter)) {
				if p.onPruned != nil {
					p.onPruned(roomID)
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (p *Reaper) Done() <-chan struct{} {
	return p.done
}
