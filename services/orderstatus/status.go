package orderstatus

// Status is the set of status codes the order backends report.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusPickedUp  Status = "picked_up"
	StatusOnTheWay  Status = "on_the_way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

const unknownLabel = "Status unknown"

var displayLabels = map[Status]string{
	StatusPlaced:    "Order placed",
	StatusConfirmed: "Order confirmed by restaurant",
	StatusPreparing: "Your food is being prepared",
	StatusReady:     "Ready for pickup",
	StatusPickedUp:  "Picked up by rider",
	StatusOnTheWay:  "On the way",
	StatusDelivered: "Delivered",
	StatusCancelled: "Order cancelled",
}

func FromCode(code string) Status {
	return Status(code)
}

// DisplayLabel maps a backend status code to the label shown to the user.
// Codes this version does not know about get a neutral fallback.
func (s Status) DisplayLabel() string {
	label, exists := displayLabels[s]
	if !exists {
		return unknownLabel
	}

	return label
}

// IsTerminal reports whether no further updates will follow for this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
