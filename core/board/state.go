package board

// State is the controller lifecycle: no lecture selected, first fetch in
// flight, or data present with the push channel active (or degraded).
type State int

const (
	Idle State = iota
	Loading
	Live
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Live:
		return "live"
	default:
		return "idle"
	}
}

// RequestStatus tracks a user-initiated mutation so the UI can give feedback
// while the store stays untouched until the authoritative reload completes.
type RequestStatus int

const (
	RequestIdle RequestStatus = iota
	RequestPending
	RequestSucceeded
	RequestFailed
)

type RequestState struct {
	Status  RequestStatus
	Message string // user-visible; set when Status is RequestFailed
}
