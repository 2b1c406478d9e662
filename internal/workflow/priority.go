package workflow

// ComputePriority derives a 1-4 priority from an (impact, urgency) pair,
// 1 being most severe on every axis. Inputs outside {1..4} are rejected by
// the caller's validation layer; this function assumes the domain holds.
func ComputePriority(impact, urgency int) int {
	switch {
	case impact == 1 && urgency <= 2,
		impact == 2 && urgency == 1:
		return 1
	case impact == 1 && urgency == 3,
		impact == 2 && (urgency == 2 || urgency == 3),
		impact == 3 && urgency == 1:
		return 2
	case impact == 1 && urgency == 4,
		impact == 2 && urgency == 4,
		impact == 3 && (urgency == 2 || urgency == 3),
		impact == 4 && urgency <= 2:
		return 3
	default:
		return 4
	}
}
