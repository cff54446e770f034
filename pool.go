package mdview

import "runtime"

// Render worker sizing constants.
const (
	// MinWorkers ensures at least one render can run.
	MinWorkers = 1

	// MaxWorkers caps concurrent renders; a single viewer rarely has more
	// than a handful in flight.
	MaxWorkers = 16
)

// ResolveWorkers determines how many renders may run at once.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
