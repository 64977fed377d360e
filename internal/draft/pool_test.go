package draft

import (
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"

	"github.com/goserg/inhouse/internal/hero"
)

func TestHeroPool(t *testing.T) {
	table := hero.Default()
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		state  func(s *PlayerState)
		want   []hero.Hero
		length int
	}{
		{
			name:   "everything",
			state:  func(s *PlayerState) {},
			length: len(table.All()),
		},
		{
			name: "allowed wins over banned",
			state: func(s *PlayerState) {
				s.Allowed.Add("Pudge")
				s.Allowed.Add("Io")
				s.Banned.Add("Io")
			},
			want: []hero.Hero{"Io", "Pudge"},
		},
		{
			name: "banned",
			state: func(s *PlayerState) {
				s.Banned.Add("Pudge")
			},
			length: len(table.All()) - 1,
		},
		{
			name: "last match dropped",
			state: func(s *PlayerState) {
				s.Allowed = mapset.NewThreadUnsafeSet[hero.Hero]("Puck", "Pudge", "Razor", "Io", "Lion")
				s.LastMatchHeroes = []hero.Hero{"Puck", "Razor"}
				s.LastMatchDate = now.Add(-2 * time.Hour)
			},
			want: []hero.Hero{"Io", "Lion", "Pudge"},
		},
		{
			name: "last match too old",
			state: func(s *PlayerState) {
				s.Allowed = mapset.NewThreadUnsafeSet[hero.Hero]("Puck", "Pudge", "Razor", "Io", "Lion")
				s.LastMatchHeroes = []hero.Hero{"Puck", "Razor"}
				s.LastMatchDate = now.Add(-25 * time.Hour)
			},
			want: []hero.Hero{"Io", "Lion", "Puck", "Pudge", "Razor"},
		},
		{
			name: "duplicates allowed",
			state: func(s *PlayerState) {
				s.Allowed = mapset.NewThreadUnsafeSet[hero.Hero]("Puck", "Pudge", "Razor", "Io", "Lion")
				s.LastMatchHeroes = []hero.Hero{"Puck", "Razor"}
				s.LastMatchDate = now.Add(-time.Hour)
				s.AllowDuplicates = true
			},
			want: []hero.Hero{"Io", "Lion", "Puck", "Pudge", "Razor"},
		},
		{
			name: "pool would get too small",
			state: func(s *PlayerState) {
				s.Allowed = mapset.NewThreadUnsafeSet[hero.Hero]("Puck", "Pudge", "Razor", "Io")
				s.LastMatchHeroes = []hero.Hero{"Puck", "Razor"}
				s.LastMatchDate = now.Add(-time.Hour)
			},
			want: []hero.Hero{"Io", "Puck", "Pudge", "Razor"},
		},
		{
			name: "fewer heroes shown",
			state: func(s *PlayerState) {
				s.Allowed = mapset.NewThreadUnsafeSet[hero.Hero]("Puck", "Pudge", "Razor", "Io")
				s.HeroesShown = 2
				s.LastMatchHeroes = []hero.Hero{"Puck", "Razor"}
				s.LastMatchDate = now.Add(-time.Hour)
			},
			want: []hero.Hero{"Io", "Pudge"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewPlayerState()
			tt.state(state)
			got := HeroPool(table, state, now)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Len(t, got, tt.length)
		})
	}
}

func TestTryReroll(t *testing.T) {
	start := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	limit := RerollLimit{Count: 2, Window: time.Hour}
	state := NewPlayerState()

	assert.True(t, state.TryReroll(start, limit))
	assert.True(t, state.TryReroll(start.Add(10*time.Minute), limit))
	assert.False(t, state.TryReroll(start.Add(20*time.Minute), limit))
	assert.True(t, state.TryReroll(start.Add(61*time.Minute), limit))
	assert.False(t, state.TryReroll(start.Add(65*time.Minute), limit))
	assert.True(t, state.TryReroll(start.Add(71*time.Minute), limit))
}

func TestTryRerollUnlimited(t *testing.T) {
	state := NewPlayerState()
	now := time.Now()
	for i := 0; i < 10; i++ {
		assert.True(t, state.TryReroll(now, RerollLimit{}))
	}
	assert.Empty(t, state.Rerolls)
}

func TestPlayerStateClone(t *testing.T) {
	state := NewPlayerState()
	state.Banned.Add("Pudge")
	c := state.Clone()
	c.Banned.Add("Io")
	assert.False(t, state.Banned.Contains("Io"))
	assert.True(t, c.Banned.Contains("Pudge"))
}
