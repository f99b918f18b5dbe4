package workflow

// Machine describes the legal status transitions for one application module.
// Statuses absent from Transitions (or mapped to an empty set) are terminal:
// once an application reaches one, no further transition is accepted.
type Machine struct {
	// Initial is the status assigned on create.
	Initial string

	// Submitted is the status entered when the applicant submits. When it
	// equals Initial, applications are considered submitted at creation time.
	Submitted string

	// Transitions maps each status to the set of statuses reachable from it.
	Transitions map[string][]string

	// Review lists the statuses that count as "under review"; entering the
	// first of them stamps reviewed_at.
	Review []string

	// Negative lists the terminal statuses that require a written reason.
	Negative []string
}

// CanTransition reports whether a direct transition from one status to
// another is allowed.
func (m Machine) CanTransition(from, to string) bool {
	for _, next := range m.Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func (m Machine) IsTerminal(status string) bool {
	return m.Known(status) && len(m.Transitions[status]) == 0
}

// IsReview reports whether a status counts as "under review".
func (m Machine) IsReview(status string) bool {
	for _, s := range m.Review {
		if s == status {
			return true
		}
	}
	return false
}

// IsNegative reports whether a status is a terminal negative decision.
func (m Machine) IsNegative(status string) bool {
	for _, s := range m.Negative {
		if s == status {
			return true
		}
	}
	return false
}

// Known reports whether the status belongs to this machine's vocabulary.
func (m Machine) Known(status string) bool {
	if status == m.Initial || status == m.Submitted {
		return true
	}
	if _, ok := m.Transitions[status]; ok {
		return true
	}
	for _, nexts := range m.Transitions {
		for _, next := range nexts {
			if next == status {
				return true
			}
		}
	}
	return false
}

// Statuses returns the machine's full vocabulary in no particular order.
func (m Machine) Statuses() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(m.Transitions)+2)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	add(m.Initial)
	add(m.Submitted)
	for from, nexts := range m.Transitions {
		add(from)
		for _, next := range nexts {
			add(next)
		}
	}
	return out
}
