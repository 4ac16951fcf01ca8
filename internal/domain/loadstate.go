package domain

// LoadState is the sealed request lifecycle shared by the views:
// Idle → Loading → {Loaded, Failed}.
// Exactly one variant holds at a time, so a view can never be
// loading and failed at once.
//
// go-sumtype:decl LoadState
type LoadState interface {
	sealed()
}

// Idle means nothing has been requested yet.
type Idle struct{}

func (Idle) sealed() {}

// Loading means a request with sequence token Seq is in flight.
type Loading struct {
	Seq uint64
}

func (Loading) sealed() {}

// Loaded means the latest request succeeded.
type Loaded struct{}

func (Loaded) sealed() {}

// Failed means the latest request failed.
// Message is user-facing; Cause keeps the detail for logs.
type Failed struct {
	Cause   error
	Message string
}

func (Failed) sealed() {}

// IsLoading reports whether s is Loading.
func IsLoading(s LoadState) bool {
	_, ok := s.(Loading)
	return ok
}

// ErrorMessage returns the user-facing message of a Failed state, or "".
func ErrorMessage(s LoadState) string {
	if f, ok := s.(Failed); ok {
		return f.Message
	}
	return ""
}

// StateName returns a short name for the state, for logs and status lines.
func StateName(s LoadState) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}
