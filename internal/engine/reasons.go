package engine

// Reason is a closed catalog of domain failure codes. Expected rule
// violations are values, never panics; callers can switch on the code and
// show the message.
type Reason string

const (
	ReasonInsufficientAU          Reason = "insufficient_au"
	ReasonInsufficientResources   Reason = "insufficient_resources"
	ReasonMissingBuilding         Reason = "missing_building"
	ReasonMaxLevelReached         Reason = "max_level_reached"
	ReasonPhaseNotAllowed         Reason = "phase_not_allowed"
	ReasonExpeditionAlreadyActive Reason = "expedition_already_active"
	ReasonNodeInaccessible        Reason = "node_inaccessible"
	ReasonUnknownRecipeOrTech     Reason = "unknown_recipe_or_tech"
)

var knownReasons = map[Reason]bool{
	ReasonInsufficientAU:          true,
	ReasonInsufficientResources:   true,
	ReasonMissingBuilding:         true,
	ReasonMaxLevelReached:         true,
	ReasonPhaseNotAllowed:         true,
	ReasonExpeditionAlreadyActive: true,
	ReasonNodeInaccessible:        true,
	ReasonUnknownRecipeOrTech:     true,
}

// IsKnownReason reports whether the code belongs to the catalog.
func IsKnownReason(r Reason) bool {
	return knownReasons[r]
}
