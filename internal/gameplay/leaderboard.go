package gameplay

import (
	"sort"
	"time"
)

// LeaderboardEntry is one recorded high score.
type LeaderboardEntry struct {
	Name   string
	Score  int
	Played time.Duration
	Date   time.Time
}

// Board is an in-memory Leaderboard keeping the best Capacity scores,
// highest first. Loading and saving entries is left to the caller.
type Board struct {
	capacity int
	entries  []LeaderboardEntry
}

func NewBoard(capacity int, entries ...LeaderboardEntry) *Board {
	b := &Board{capacity: capacity}
	for _, e := range entries {
		b.insert(e)
	}
	return b
}

// Qualifies reports whether score would earn a place on the board.
func (b *Board) Qualifies(score int) bool {
	if score <= 0 || b.capacity <= 0 {
		return false
	}
	if len(b.entries) < b.capacity {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}

// Add records a score if it qualifies and reports whether it was kept.
func (b *Board) Add(name string, score int, played time.Duration) bool {
	if !b.Qualifies(score) {
		return false
	}
	b.insert(LeaderboardEntry{Name: name, Score: score, Played: played, Date: time.Now()})
	return true
}

// Entries returns the board, highest score first.
func (b *Board) Entries() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Board) insert(e LeaderboardEntry) {
	// equal scores keep arrival order
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Score < e.Score })
	b.entries = append(b.entries, LeaderboardEntry{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = e
	if b.capacity > 0 && len(b.entries) > b.capacity {
		b.entries = b.entries[:b.capacity]
	}
}
