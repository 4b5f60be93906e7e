package conquest

// Grid and galaxy generation bounds.
const (
	GridWidth  = 12
	GridHeight = 10

	MinStars = 10
	MaxStars = 14

	// Homes are placed at least this far apart (Manhattan).
	MinHomeDistance = 6

	// Home stars always produce and garrison at this rate.
	HomeRU = 4
)

// Per-turn rule constants. These are the values the observation layer
// reports to agents, so they live here rather than inline in the
// executor.
const (
	// One fleet in HyperspaceLossDie is lost per turn in transit.
	HyperspaceLossDie = 50

	// Chance that an under-garrisoned, non-home player star reverts
	// to neutral control.
	RebellionChance = 0.5
)

// ProductionFormula describes production for the observation rules
// block: every owned star adds its RU in ships each turn.
const ProductionFormula = "one ship per resource unit per turn at owned stars"
