package conquest

// FleetID is a monotonically increasing fleet identifier, unique for
// the lifetime of a game. Hyperspace rolls happen in id order, so the
// ordering is part of the replay contract.
type FleetID int

// Fleet is a group of ships in transit between two stars. A fleet is
// created when an order is accepted, with TurnsRemaining equal to the
// Manhattan distance, and removed when it is lost in hyperspace or
// resolved on arrival.
type Fleet struct {
	ID             FleetID `json:"id"`
	Owner          Owner   `json:"owner"`
	Origin         StarID  `json:"origin"`
	Dest           StarID  `json:"dest"`
	Ships          int     `json:"ships"`
	TurnsRemaining int     `json:"turns_remaining"`
}
