package domain

// Cue is a named audio cue emitted at turn transitions.
type Cue string

const (
	CueSelect        Cue = "select"
	CueClick         Cue = "click"
	CueRoutePick     Cue = "route-pick"
	CueConfirm       Cue = "confirm"
	CueDeliveryStart Cue = "delivery-start"
	CueSuccess       Cue = "success"
	CueError         Cue = "error"
	CueLevelUp       Cue = "level-up"
)
