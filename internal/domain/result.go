package domain

// ResultKind - variant tag of a mutation result.
type ResultKind int

const (
	ResultOk ResultKind = iota
	ResultErr
)

// Result - outcome of a vote or delete mutation: either ok or err with a reason
// supplied by the poll service.
type Result struct {
	kind   ResultKind
	reason string
}

func Ok() Result {
	return Result{kind: ResultOk}
}

func Err(reason string) Result {
	return Result{kind: ResultErr, reason: reason}
}

func (r Result) Kind() ResultKind {
	return r.kind
}

// Reason is empty for the ok variant.
func (r Result) Reason() string {
	return r.reason
}

func (r Result) String() string {
	switch r.kind {
	case ResultOk:
		return "ok"
	case ResultErr:
		return "err(" + r.reason + ")"
	default:
		return "unknown"
	}
}
