package domain

type VehicleState string

const (
	VehicleStateAvailable     VehicleState = "AVAILABLE"
	VehicleStateInRental      VehicleState = "IN_RENTAL"
	VehicleStateInMaintenance VehicleState = "IN_MAINTENANCE"
)

type VehicleAction string

const (
	ActionStartRental            VehicleAction = "start rental"
	ActionFinishRental           VehicleAction = "finish rental"
	ActionReleaseFromMaintenance VehicleAction = "release from maintenance"
)

// transition is one row of the state table. Finishing a rental has two targets,
// picked by whether maintenance is due.
type transition struct {
	next          VehicleState
	dueForService VehicleState
}

var vehicleTransitions = map[VehicleState]map[VehicleAction]transition{
	VehicleStateAvailable: {
		ActionStartRental: {next: VehicleStateInRental},
	},
	VehicleStateInRental: {
		ActionFinishRental: {next: VehicleStateAvailable, dueForService: VehicleStateInMaintenance},
	},
	VehicleStateInMaintenance: {
		ActionReleaseFromMaintenance: {next: VehicleStateAvailable},
	},
}

func (s VehicleState) String() string {
	return string(s)
}

// Allows reports whether action is legal from s.
func (s VehicleState) Allows(action VehicleAction) bool {
	_, ok := vehicleTransitions[s][action]
	return ok
}

func (s VehicleState) CanStartRental() bool            { return s.Allows(ActionStartRental) }
func (s VehicleState) CanFinishRental() bool           { return s.Allows(ActionFinishRental) }
func (s VehicleState) CanReleaseFromMaintenance() bool { return s.Allows(ActionReleaseFromMaintenance) }

// Transition looks up the next state. maintenanceDue only matters for finish rental.
func Transition(from VehicleState, action VehicleAction, maintenanceDue bool) (VehicleState, error) {
	t, ok := vehicleTransitions[from][action]
	if !ok {
		return from, &InvalidTransitionError{State: from, Action: action}
	}
	if maintenanceDue && t.dueForService != "" {
		return t.dueForService, nil
	}
	return t.next, nil
}
