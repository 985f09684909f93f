package domain

// VersionVector maps a device identifier to a monotonically increasing revision
// counter. It detects divergent edits across offline replicas; it does not
// resolve them. Merging is explicit and pointwise (see Merge).
type VersionVector map[string]int64

// NewVersionVector returns a fresh vector for a record created by deviceID.
func NewVersionVector(deviceID string) VersionVector {
	return VersionVector{deviceID: 1}
}

// Increment bumps the acting device's counter by exactly 1, leaving all other
// devices' counters untouched.
func (v VersionVector) Increment(deviceID string) {
	v[deviceID]++
}

// Counter returns the revision counter recorded for deviceID (zero if absent).
func (v VersionVector) Counter(deviceID string) int64 {
	return v[deviceID]
}

// Descends reports whether v includes every revision in other, i.e. v is a
// causal successor of (or equal to) other.
func (v VersionVector) Descends(other VersionVector) bool {
	for device, counter := range other {
		if v[device] < counter {
			return false
		}
	}
	return true
}

// Concurrent reports whether v and other diverged: neither descends the other.
func (v VersionVector) Concurrent(other VersionVector) bool {
	return !v.Descends(other) && !other.Descends(v)
}

// Merge folds other into v taking the pointwise maximum of each counter.
func (v VersionVector) Merge(other VersionVector) {
	for device, counter := range other {
		if counter > v[device] {
			v[device] = counter
		}
	}
}

// Clone returns an independent copy of the vector.
func (v VersionVector) Clone() VersionVector {
	out := make(VersionVector, len(v))
	for device, counter := range v {
		out[device] = counter
	}
	return out
}
