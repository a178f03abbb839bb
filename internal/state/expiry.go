package state

import "time"

// Timed is any record carrying a monotonic timestamp.
type Timed interface {
	Stamp() time.Duration
}

// Expired reports whether a record stamped at ts is older than expiry at now.
func Expired(now, ts, expiry time.Duration) bool {
	return now-ts > expiry
}

// Prune returns the records whose age at now is at most expiry, preserving
// order. The input slice is not modified.
func Prune[T Timed](now, expiry time.Duration, records []T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if !Expired(now, r.Stamp(), expiry) {
			out = append(out, r)
		}
	}
	return out
}

// PruneInPlace is Prune reusing the backing array of records. Only call it
// on slices the caller owns.
func PruneInPlace[T Timed](now, expiry time.Duration, records []T) []T {
	kept := records[:0]
	for _, r := range records {
		if !Expired(now, r.Stamp(), expiry) {
			kept = append(kept, r)
		}
	}
	var zero T
	for i := len(kept); i < len(records); i++ {
		records[i] = zero
	}
	return kept
}

// Age is the normalized age of ts at now: 0 when fresh, 1 at expiry.
func Age(now, ts, expiry time.Duration) float64 {
	if expiry <= 0 {
		return 1
	}
	a := float64(now-ts) / float64(expiry)
	if a < 0 {
		return 0
	}
	return a
}
