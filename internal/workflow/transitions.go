package workflow

import "jobcore/backend/internal/models"

// allowedTransitions is the application status adjacency table. A status that
// maps to an empty set has no recruiter-initiated outgoing transition: NEW
// applications are only promoted by the detail view (NEW -> VIEWED) or reset
// by re-application.
var allowedTransitions = map[models.SystemStatus][]models.SystemStatus{
	models.StatusNew: {},
	models.StatusViewed: {
		models.StatusInProgress,
		models.StatusRejected,
		models.StatusNoMoreInterests,
	},
	models.StatusInProgress: {
		models.StatusAccepted,
		models.StatusRejected,
		models.StatusNoMoreInterests,
	},
}

// TransitionAllowed reports whether an application may move from one status
// to another.
func TransitionAllowed(from, to models.SystemStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the set of legal next statuses for the given status.
func AllowedTargets(from models.SystemStatus) []models.SystemStatus {
	targets := allowedTransitions[from]
	out := make([]models.SystemStatus, len(targets))
	copy(out, targets)
	return out
}
