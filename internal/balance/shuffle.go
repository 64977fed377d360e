package balance

import (
	"math/rand"

	"github.com/goserg/inhouse/internal/domain"
)

// MaxRosterSize is the largest roster Shuffle is meant for. The search is
// exhaustive, C(n, n/2) splits are evaluated.
const MaxRosterSize = 12

type split struct {
	left  []int
	gap   int
	infoL teamInfo
	infoR teamInfo
}

// Shuffle finds the split of roster into a first team of len/2 players and a
// second team of the rest with the smallest pity adjusted rating gap. Ties go
// to the split enumerated first.
//
// With temperature > 0 every split whose gap is within temperature rating
// points of the best one is acceptable and one of them is picked uniformly.
func Shuffle(roster []domain.RosterEntry, streaks map[domain.PlayerID]int, opts Options, temperature int, rnd *rand.Rand) (domain.BalancedTeam, domain.BalancedTeam) {
	n := len(roster)
	k := n / 2

	var best *split
	var candidates []split
	combinations(n, k, func(idx []int) {
		left, right := partition(roster, idx)
		l := calculateTeam(left, streaks, opts)
		r := calculateTeam(right, streaks, opts)
		s := split{gap: abs(l.pityRating - r.pityRating), infoL: l, infoR: r}
		if temperature > 0 {
			s.left = append([]int(nil), idx...)
			candidates = append(candidates, s)
		}
		if best == nil || s.gap < best.gap {
			s.left = append([]int(nil), idx...)
			best = &s
		}
	})

	chosen := *best
	if temperature > 0 {
		var window []split
		for _, c := range candidates {
			if c.gap <= best.gap+temperature {
				window = append(window, c)
			}
		}
		if rnd != nil {
			chosen = window[rnd.Intn(len(window))]
		} else {
			chosen = window[rand.Intn(len(window))]
		}
	}

	left, right := partition(roster, chosen.left)
	return buildTeam(left, chosen.infoL), buildTeam(right, chosen.infoR)
}

// Gap is the absolute pity rating difference of two teams.
func Gap(a, b domain.BalancedTeam) int {
	return abs(a.PityRating - b.PityRating)
}

func partition(roster []domain.RosterEntry, idx []int) ([]domain.RosterEntry, []domain.RosterEntry) {
	left := make([]domain.RosterEntry, 0, len(idx))
	right := make([]domain.RosterEntry, 0, len(roster)-len(idx))
	j := 0
	for i := range roster {
		if j < len(idx) && idx[j] == i {
			left = append(left, roster[i])
			j++
			continue
		}
		right = append(right, roster[i])
	}
	return left, right
}

// combinations calls fn with every k-subset of [0, n) in lexicographic order.
// fn must not keep idx.
func combinations(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
