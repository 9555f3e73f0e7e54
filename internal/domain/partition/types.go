package partition

import "car-auction/internal/pkg/errs"

var ErrUnknownStatus = errs.New("unknown partition status")

type Status string

const (
	StatusHealthy     Status = "Healthy"
	StatusPartitioned Status = "Partitioned"
	StatusReconciling Status = "Reconciling"
	StatusResolved    Status = "Resolved"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHealthy, StatusPartitioned, StatusReconciling, StatusResolved:
		return true
	default:
		return false
	}
}

// IsActive reports an incident that is still open.
func (s Status) IsActive() bool {
	return s == StatusPartitioned || s == StatusReconciling
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrapf(ErrUnknownStatus, "parse %q", s)
	}
	return st, nil
}
