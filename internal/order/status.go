package order

// Status describes an order's payment lifecycle stage.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// pending and paid toggle freely; cancellation is one-way and terminal.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {StatusPending: true, StatusCancelled: true},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Label maps a status to its operator-facing text. Unknown values read as
// awaiting payment, matching how unlabelled legacy orders are shown.
func (s Status) Label() string {
	switch s {
	case StatusPaid:
		return "paid"
	case StatusCancelled:
		return "cancelled"
	default:
		return "awaiting payment"
	}
}
