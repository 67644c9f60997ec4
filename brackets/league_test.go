package brackets

import (
	"testing"

	"github.com/aoe4tourney/engine/models"
)

func TestLeagueMatchCountAndRounds(t *testing.T) {
	svc := NewLeagueFormatService()
	stage, matches, err := svc.Build(42, entrantIDs(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// n*(n-1)/2 unordered pairs for n=4 -> 6 matches across n-1=3 rounds.
	if len(matches) != 6 {
		t.Fatalf("expected 6 matches for 4 entrants, got %d", len(matches))
	}
	if stage.Type != models.StageLeague || stage.Order != 0 || stage.BestOfDefault != 1 {
		t.Errorf("unexpected stage: %+v", stage)
	}
	byRound := countByRound(matches)
	if len(byRound) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(byRound))
	}
	for round, ms := range byRound {
		seen := make(map[int]bool)
		for _, m := range ms {
			if seen[*m.Entrant1ID] || seen[*m.Entrant2ID] {
				t.Errorf("round %d: entrant appears twice", round)
			}
			seen[*m.Entrant1ID] = true
			seen[*m.Entrant2ID] = true
			if m.BestOf != 1 {
				t.Errorf("expected best_of 1, got %d", m.BestOf)
			}
			if m.Status != models.MatchScheduled {
				t.Errorf("league match should start SCHEDULED, got %s", m.Status)
			}
		}
	}
}

func TestLeagueOddEntrantCountProducesOneByeSitOutPerRound(t *testing.T) {
	svc := NewLeagueFormatService()
	_, matches, err := svc.Build(1, entrantIDs(5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// 5 entrants -> C(5,2)=10 matches across 5 rounds, 2 matches/round (one sits out).
	if len(matches) != 10 {
		t.Fatalf("expected 10 matches for 5 entrants, got %d", len(matches))
	}
	byRound := countByRound(matches)
	if len(byRound) != 5 {
		t.Fatalf("expected 5 rounds for odd entrant count, got %d", len(byRound))
	}
	for round, ms := range byRound {
		if len(ms) != 2 {
			t.Errorf("round %d: expected 2 matches (one entrant sits out), got %d", round, len(ms))
		}
	}
}

func TestLeagueExhaustsAllPairsExactlyOnce(t *testing.T) {
	svc := NewLeagueFormatService()
	ids := entrantIDs(6)
	_, matches, err := svc.Build(99, ids)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	seen := make(map[[2]int]int)
	for _, m := range matches {
		seen[unorderedPair([2]int{*m.Entrant1ID, *m.Entrant2ID})]++
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			key := unorderedPair([2]int{ids[i], ids[j]})
			if seen[key] != 1 {
				t.Errorf("pair %v played %d times, want exactly 1", key, seen[key])
			}
		}
	}
}

func TestLeagueDeterministic(t *testing.T) {
	svc := NewLeagueFormatService()
	_, a, err := svc.Build(42, entrantIDs(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, b, err := svc.Build(42, entrantIDs(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic match count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if *a[i].Entrant1ID != *b[i].Entrant1ID || *a[i].Entrant2ID != *b[i].Entrant2ID || a[i].RoundNumber != b[i].RoundNumber {
			t.Fatalf("match %d differs between builds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLeagueScenario1ExactPairings(t *testing.T) {
	// spec.md §8 Scenario 1: LEAGUE, 4 solo entrants [A,B,C,D] with
	// A=1,B=2,C=3,D=4, fed in original order. Each round's unordered pairs
	// must match round_robin_rounds([1,2,3,4]) — league pairing never
	// reorders entrants.
	svc := NewLeagueFormatService()
	_, matches, err := svc.Build(42, []int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := map[int][][2]int{
		1: {{1, 2}, {3, 4}},
		2: {{1, 3}, {2, 4}},
		3: {{1, 4}, {2, 3}},
	}
	byRound := countByRound(matches)
	for round, pairs := range want {
		ms, ok := byRound[round]
		if !ok || len(ms) != len(pairs) {
			t.Fatalf("round %d: got %d matches, want %d", round, len(ms), len(pairs))
		}
		got := make(map[[2]int]bool)
		for _, m := range ms {
			got[unorderedPair([2]int{*m.Entrant1ID, *m.Entrant2ID})] = true
		}
		for _, pair := range pairs {
			if !got[unorderedPair(pair)] {
				t.Errorf("round %d: missing expected pairing %v, got matches %+v", round, pair, ms)
			}
		}
	}
}

func TestLeagueRejectsTooFewEntrants(t *testing.T) {
	svc := NewLeagueFormatService()
	if _, _, err := svc.Build(1, []int{1}); err == nil {
		t.Fatal("expected error for fewer than 2 entrants")
	}
}
