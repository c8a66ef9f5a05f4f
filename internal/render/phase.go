package render

// Phase is a state of the in-browser rendering flow.
type Phase string

const (
	PhaseLoading      Phase = "loading"
	PhaseInitializing Phase = "initializing"
	PhaseRendering    Phase = "rendering"
	PhaseSucceeded    Phase = "succeeded"
	PhaseFailed       Phase = "failed"
)

func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

type Event string

const (
	EventLoaded      Event = "loaded"
	EventInitialized Event = "initialized"
	EventRendered    Event = "rendered"
	EventError       Event = "error"
	EventTimeout     Event = "timeout"
)

// Machine is the transition table the embedded page runs. It is serialised
// into the document so the browser and Go agree on the flow.
type Machine struct {
	Initial     Phase                     `json:"initial"`
	Transitions map[Phase]map[Event]Phase `json:"transitions"`
}

func NewMachine() Machine {
	return Machine{
		Initial: PhaseLoading,
		Transitions: map[Phase]map[Event]Phase{
			PhaseLoading: {
				EventLoaded:  PhaseInitializing,
				EventError:   PhaseFailed,
				EventTimeout: PhaseFailed,
			},
			PhaseInitializing: {
				EventInitialized: PhaseRendering,
				EventError:       PhaseFailed,
				EventTimeout:     PhaseFailed,
			},
			PhaseRendering: {
				EventRendered: PhaseSucceeded,
				EventError:    PhaseFailed,
				EventTimeout:  PhaseFailed,
			},
		},
	}
}

// Next returns the phase after e. Events with no transition leave the phase unchanged.
func (m Machine) Next(p Phase, e Event) Phase {
	if next, ok := m.Transitions[p][e]; ok {
		return next
	}
	return p
}
