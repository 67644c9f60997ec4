// Package brackets implements the deterministic, pure bracket-structure
// algorithms behind tournament stage generation: seeding, round-robin
// pairing, and single-elimination bracket construction with bye advancement.
//
// Nothing here touches a database. StructureBuilder (in services/) is the
// orchestrator that calls into this package and persists the result.
package brackets

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// ValidationError is the Go analogue of the original rest_framework
// ValidationError the source raises for every user-facing rejection in the
// bracket layer (bad best_of, too few entrants, unsupported format).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DeterministicRNG returns a pseudo-random source seeded from the first 8
// bytes of SHA-256("{tournamentID}:{format}"), interpreted as a big-endian
// unsigned 64-bit integer. It is the only source of randomness anywhere in
// structure building: two builds of the same tournament and format always
// shuffle entrants identically.
func DeterministicRNG(tournamentID int, format string) *rand.Rand {
	raw := []byte(fmt.Sprintf("%d:%s", tournamentID, format))
	sum := sha256.Sum256(raw)
	seed := binary.BigEndian.Uint64(sum[:8])
	return rand.New(rand.NewSource(int64(seed)))
}

// WinsNeeded returns the number of game wins required to take a best-of-N
// match. bestOf must be a positive odd number.
func WinsNeeded(bestOf int) (int, error) {
	if bestOf <= 0 || bestOf%2 == 0 {
		return 0, validationErrorf("best_of must be a positive odd number, got %d", bestOf)
	}
	return bestOf/2 + 1, nil
}

// NextPowerOfTwo returns 1 for n<=1, else the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// RoundRobinRounds pairs up ids into n-1 (or n for odd n) rounds using the
// circle method: seat 0 stays fixed, every other seat rotates one position
// counter-clockwise each round, and each round pairs seat 0 with seat 1 and
// the remaining seats mirrored around seat 1 on the rotating ring: (2, n-1),
// (3, n-2), .... Odd-indexed rounds (the 2nd, 4th, ...) have their
// pair order swapped (a,b) -> (b,a) to balance home/away across the
// schedule. An odd entrant count gets a -1 sentinel seat; whichever real id
// is paired against it sits out that round (no match is generated for that
// pairing by the caller).
func RoundRobinRounds(ids []int) [][][2]int {
	items := append([]int(nil), ids...)
	if len(items)%2 == 1 {
		items = append(items, -1)
	}
	n := len(items)
	if n == 0 {
		return nil
	}
	half := n / 2
	rounds := make([][][2]int, 0, n-1)
	for round := 0; round < n-1; round++ {
		pairs := make([][2]int, 0, half)
		for j := 0; j < half; j++ {
			a, b := items[0], items[1]
			if j > 0 {
				a, b = items[j+1], items[n-j]
			}
			if round%2 == 1 {
				a, b = b, a
			}
			pairs = append(pairs, [2]int{a, b})
		}
		rounds = append(rounds, pairs)

		if n > 2 {
			last := items[1]
			copy(items[1:n-1], items[2:n])
			items[n-1] = last
		}
	}
	return rounds
}

// BracketSeedPositions produces the standard single-elimination seed order
// for a power-of-two bracket of the given size: positions(1) = [1];
// positions(2m) interleaves positions(m) with its mirror (s, 2m+1-s). The
// result is a permutation of [1..size] giving the classic 1-vs-N, 2-vs-(N-1)
// bracket layout.
func BracketSeedPositions(size int) []int {
	if size <= 1 {
		return []int{1}
	}
	prev := BracketSeedPositions(size / 2)
	out := make([]int, 0, size)
	for _, s := range prev {
		out = append(out, s, size+1-s)
	}
	return out
}
