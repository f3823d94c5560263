package results

import (
	"reflect"
	"testing"
)

func TestStoreSetAndTime(t *testing.T) {
	s := NewStore()

	s.Set("ngame", 0, 42.5)
	s.Set("ngame", 1, DNF)
	s.Set("ngame3", 0, 65.2)

	cases := []struct {
		name   string
		level  string
		player int
		want   float64
	}{
		{"recorded_time", "ngame", 0, 42.5},
		{"recorded_dnf", "ngame", 1, DNF},
		{"second_level", "ngame3", 0, 65.2},
		{"missing_player", "ngame", 2, DNF},
		{"missing_level", "nowhere", 0, DNF},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Time(c.level, c.player); got != c.want {
				t.Fatalf("Time(%q, %d) = %v, want %v", c.level, c.player, got, c.want)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore()
	s.Set("ngame", 0, DNF)
	s.Set("ngame", 0, 30.0)

	if got := s.Time("ngame", 0); got != 30.0 {
		t.Fatalf("later Set should win, got %v", got)
	}
}

func TestStoreLevelsAndPlayers(t *testing.T) {
	s := NewStore()
	s.Set("ngame3", 2, 10)
	s.Set("ngame", 0, 20)
	s.Set("ngame", 3, 30)

	if got, want := s.Levels(), []string{"ngame", "ngame3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Levels() = %v, want %v", got, want)
	}
	if got, want := s.Players(), []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Players() = %v, want %v", got, want)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set("ngame", 0, 42.5)
	s.Clear()

	if got := s.Time("ngame", 0); got != DNF {
		t.Fatalf("cleared store should read DNF, got %v", got)
	}
	if got := s.Levels(); len(got) != 0 {
		t.Fatalf("cleared store should have no levels, got %v", got)
	}
}

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store
	s.Set("ngame", 0, 1)
	s.Clear()
	if got := s.Time("ngame", 0); got != DNF {
		t.Fatalf("nil store should read DNF, got %v", got)
	}
	if s.Levels() != nil || s.Players() != nil {
		t.Fatalf("nil store should enumerate nothing")
	}
}
