package checker

// Status is a state of the membership check state machine:
//
//	Idle -> Validating -> {Invalid | Loading} -> {LoadFailure | Member | NotMember}
type Status string

const (
	StatusIdle        Status = "idle"
	StatusValidating  Status = "validating"
	StatusLoading     Status = "loading"
	StatusInvalid     Status = "invalid"
	StatusLoadFailure Status = "load_failure"
	StatusMember      Status = "member"
	StatusNotMember   Status = "not_member"
)

const (
	MsgInvalidFormat = "Invalid Ethereum address format"
	MsgCheckFailed   = "Failed to check whitelist status"
)

// TerminalStatuses are the states that only a new submission can leave.
var TerminalStatuses = []Status{StatusInvalid, StatusLoadFailure, StatusMember, StatusNotMember}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusInvalid, StatusLoadFailure, StatusMember, StatusNotMember:
		return true
	}
	return false
}

func (s Status) IsLoading() bool {
	return s == StatusValidating || s == StatusLoading
}

func (s Status) String() string {
	return string(s)
}

// Result is the observable state of a check.
type Result struct {
	Address       string // canonical candidate, empty when idle
	Status        Status
	IsWhitelisted *bool // nil until a terminal state is reached
	Error         string
}

func (r Result) IsLoading() bool {
	return r.Status.IsLoading()
}

func idleResult() Result {
	return Result{Status: StatusIdle}
}

func inProgress(addr string, status Status) Result {
	return Result{Address: addr, Status: status}
}

func terminal(addr string, status Status, whitelisted bool, msg string) Result {
	return Result{Address: addr, Status: status, IsWhitelisted: &whitelisted, Error: msg}
}
