package domain

// DeliveryStatus classifies the result of one outbound delivery.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// DeliveryOutcome is the terminal result of a Courier call.
type DeliveryOutcome struct {
	Status DeliveryStatus `json:"status"`
	// Diagnostic carries the concatenated transport and endpoint error
	// text when Status is failed. It is shown to the user verbatim so it
	// can be copied and reported.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Delivered returns a successful outcome.
func Delivered() DeliveryOutcome {
	return DeliveryOutcome{Status: DeliveryDelivered}
}

// Failed returns a failed outcome with the given diagnostic.
func Failed(diagnostic string) DeliveryOutcome {
	return DeliveryOutcome{Status: DeliveryFailed, Diagnostic: diagnostic}
}

// NoticeStatus is the state of the submission result notifier.
type NoticeStatus string

const (
	NoticeIdle      NoticeStatus = "idle"
	NoticeDelivered NoticeStatus = "delivered"
	NoticeFailed    NoticeStatus = "failed"
)

// Notice is the submission result notifier consumed by the presentation
// layer. Transitions are restricted: idle moves to delivered or failed only
// through a completed delivery, and delivered/failed move back to idle only
// when the presentation surface dismisses the notification. A notice never
// reflects an in-flight request.
type Notice struct {
	Status     NoticeStatus `json:"status"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

// Complete applies a finished delivery outcome to an idle notice.
func (n *Notice) Complete(outcome DeliveryOutcome) error {
	if n.Status != NoticeIdle {
		return ErrInvalidTransition
	}
	switch outcome.Status {
	case DeliveryDelivered:
		n.Status = NoticeDelivered
		n.Diagnostic = ""
	case DeliveryFailed:
		n.Status = NoticeFailed
		n.Diagnostic = outcome.Diagnostic
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Dismiss returns a delivered or failed notice to idle.
func (n *Notice) Dismiss() error {
	if n.Status != NoticeDelivered && n.Status != NoticeFailed {
		return ErrInvalidTransition
	}
	n.Status = NoticeIdle
	n.Diagnostic = ""
	return nil
}
