package brackets

import (
	"testing"
)

func TestWinsNeeded(t *testing.T) {
	cases := map[int]int{1: 1, 3: 2, 5: 3, 7: 4}
	for bestOf, want := range cases {
		got, err := WinsNeeded(bestOf)
		if err != nil {
			t.Fatalf("WinsNeeded(%d): unexpected error %v", bestOf, err)
		}
		if got != want {
			t.Errorf("WinsNeeded(%d) = %d, want %d", bestOf, got, want)
		}
		if 2*got-1 != bestOf {
			t.Errorf("2*wins_needed(%d)-1 = %d, want %d", bestOf, 2*got-1, bestOf)
		}
	}
}

func TestWinsNeededRejectsEven(t *testing.T) {
	if _, err := WinsNeeded(4); err == nil {
		t.Fatal("expected error for even best_of")
	}
	if _, err := WinsNeeded(0); err == nil {
		t.Fatal("expected error for non-positive best_of")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16}
	for n, want := range cases {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestBracketSeedPositionsIsPermutation(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8, 16} {
		positions := BracketSeedPositions(size)
		if len(positions) != size {
			t.Fatalf("BracketSeedPositions(%d) has length %d", size, len(positions))
		}
		seen := make(map[int]bool, size)
		for _, s := range positions {
			if s < 1 || s > size {
				t.Fatalf("BracketSeedPositions(%d) produced out-of-range seed %d", size, s)
			}
			if seen[s] {
				t.Fatalf("BracketSeedPositions(%d) repeated seed %d", size, s)
			}
			seen[s] = true
		}
	}
}

func TestBracketSeedPositionsFirstRoundPairsMirror(t *testing.T) {
	for _, size := range []int{2, 4, 8, 16} {
		positions := BracketSeedPositions(size)
		for i := 0; i < size; i += 2 {
			a, b := positions[i], positions[i+1]
			if a+b != size+1 {
				t.Errorf("size %d: round-1 pair (%d,%d) does not sum to %d", size, a, b, size+1)
			}
		}
	}
}

func unorderedPair(p [2]int) [2]int {
	if p[0] > p[1] {
		return [2]int{p[1], p[0]}
	}
	return p
}

func TestRoundRobinRoundsEvenCountLeagueScenario(t *testing.T) {
	// Scenario 1: LEAGUE, 4 solo entrants [A,B,C,D] with A=1,B=2,C=3,D=4.
	// Pair order within a tuple (the home/away swap on odd-indexed rounds) is
	// not checked here; what must match exactly is which unordered pairs face
	// off in which round.
	rounds := RoundRobinRounds([]int{1, 2, 3, 4})
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds for 4 entrants, got %d", len(rounds))
	}
	want := [][][2]int{
		{{1, 2}, {3, 4}},
		{{1, 3}, {2, 4}},
		{{1, 4}, {2, 3}},
	}
	for r, pairs := range rounds {
		if len(pairs) != len(want[r]) {
			t.Fatalf("round %d: got %d pairs, want %d", r+1, len(pairs), len(want[r]))
		}
		got := make(map[[2]int]bool)
		for _, pair := range pairs {
			got[unorderedPair(pair)] = true
		}
		for _, pair := range want[r] {
			if !got[unorderedPair(pair)] {
				t.Errorf("round %d: missing expected pairing %v, got pairs %v", r+1, pair, pairs)
			}
		}
	}
}

func TestRoundRobinRoundsOddCountHasByeSentinel(t *testing.T) {
	rounds := RoundRobinRounds([]int{1, 2, 3})
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds for 3 entrants (one sits out each), got %d", len(rounds))
	}
	for _, pairs := range rounds {
		byes := 0
		for _, pair := range pairs {
			if pair[0] == -1 || pair[1] == -1 {
				byes++
			}
		}
		if byes != 1 {
			t.Errorf("round should contain exactly one bye sentinel pairing, got %d", byes)
		}
	}
}

func TestRoundRobinRoundsEachEntrantOncePerRound(t *testing.T) {
	ids := []int{10, 20, 30, 40, 50}
	rounds := RoundRobinRounds(ids)
	for r, pairs := range rounds {
		seen := make(map[int]int)
		for _, pair := range pairs {
			seen[pair[0]]++
			seen[pair[1]]++
		}
		for _, id := range ids {
			if seen[id] != 1 {
				t.Errorf("round %d: entrant %d appeared %d times, want 1", r+1, id, seen[id])
			}
		}
	}
}
