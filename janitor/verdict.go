package janitor

import "fmt"

// Class is the per-cycle output of the rule evaluator for one torrent.
type Class int

const (
	// ClassKeep means no rule matched; the torrent stays.
	ClassKeep Class = iota
	// ClassProtected means a safety check matched; removal rules were not
	// even consulted.
	ClassProtected
	// ClassCandidate means a removal rule matched; the grace tracker
	// decides whether it becomes a removal.
	ClassCandidate
)

// Classification pairs a Class with the reason that produced it.
type Classification struct {
	Class      Class
	Reason     Reason     // set when Class == ClassCandidate
	Protection Protection // set when Class == ClassProtected
}

func keep() Classification {
	return Classification{Class: ClassKeep}
}

func protect(p Protection) Classification {
	return Classification{Class: ClassProtected, Protection: p}
}

func candidate(r Reason) Classification {
	return Classification{Class: ClassCandidate, Reason: r}
}

// VerdictKind is the final per-cycle decision for one torrent.
type VerdictKind int

const (
	// VerdictKeep means the torrent stays and carries no grace state.
	VerdictKeep VerdictKind = iota
	// VerdictProtected means a safety check matched.
	VerdictProtected
	// VerdictPending means a removal rule matched but the grace period has
	// not elapsed yet.
	VerdictPending
	// VerdictRemove means the torrent should be removed this cycle.
	VerdictRemove
)

// Verdict is the grace tracker's decision for one torrent in one cycle.
// Only VerdictRemove triggers an action against qBittorrent.
type Verdict struct {
	Kind       VerdictKind
	Reason     Reason     // set for VerdictPending and VerdictRemove
	Protection Protection // set for VerdictProtected
	Checks     int        // consecutive qualifying cycles so far, set for VerdictPending and VerdictRemove
}

func (v Verdict) String() string {
	switch v.Kind {
	case VerdictKeep:
		return "keep"
	case VerdictProtected:
		return fmt.Sprintf("protected(%s)", v.Protection)
	case VerdictPending:
		return fmt.Sprintf("pending(%s, %d)", v.Reason, v.Checks)
	case VerdictRemove:
		return fmt.Sprintf("remove(%s)", v.Reason)
	}
	return "unknown"
}
