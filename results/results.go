// Package results keeps per-level completion times across scenes. Times are
// written by the level scenes and read by the leaderboard.
package results

import "sort"

// DNF marks a player who did not finish a level.
const DNF = -1.0

// Store maps level id -> player index -> completion time in seconds. The zero
// value is not usable; call NewStore.
type Store struct {
	times map[string]map[int]float64
}

func NewStore() *Store {
	return &Store{times: make(map[string]map[int]float64)}
}

// Set records the completion time for a player on a level, replacing any
// earlier entry.
func (s *Store) Set(levelID string, player int, seconds float64) {
	if s == nil {
		return
	}
	level := s.times[levelID]
	if level == nil {
		level = make(map[int]float64)
		s.times[levelID] = level
	}
	level[player] = seconds
}

// Time returns the recorded time for a player on a level. Players with no
// entry read as DNF.
func (s *Store) Time(levelID string, player int) float64 {
	if s == nil {
		return DNF
	}
	if t, ok := s.times[levelID][player]; ok {
		return t
	}
	return DNF
}

// Levels returns the ids of every level with at least one entry, sorted.
func (s *Store) Levels() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.times))
	for id := range s.times {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Players returns every player index that appears in any level, sorted.
func (s *Store) Players() []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]struct{})
	for _, level := range s.times {
		for p := range level {
			seen[p] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Clear drops every recorded time.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.times = make(map[string]map[int]float64)
}
