package domain

type Status string

const (
	StatusIncomplete       Status = "incomplete"
	StatusReadyForComplete Status = "ready_for_complete"
	StatusCompleted        Status = "completed"
)

// IsTerminal reports whether no further transition can leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

func (s Status) String() string {
	return string(s)
}

// DeriveStatus re-evaluates the non-terminal status of a session from its contents.
// A session is ready once it has a currency, at least one line item and a valid buyer.
func DeriveStatus(currency string, items []LineItem, buyer *Buyer) Status {
	if currency == "" || len(items) == 0 || buyer == nil || !buyer.Valid() {
		return StatusIncomplete
	}
	return StatusReadyForComplete
}
