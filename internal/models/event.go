package models

type WeldEventType string

const (
	WeldCreated WeldEventType = "weld.created"
	WeldUpdated WeldEventType = "weld.updated"
	WeldDeleted WeldEventType = "weld.deleted"
)

// WeldEvent is pushed to change-feed subscribers after every successful write.
// Weld holds the stored record, or the last known state for deletions.
// PreviousObjectName is set on updates that moved the weld to another object.
type WeldEvent struct {
	Type               WeldEventType `json:"type"`
	ID                 string        `json:"id"`
	Weld               *Weld         `json:"weld,omitempty"`
	PreviousObjectName *string       `json:"previousObjectName,omitempty"`
}

// ObjectNames lists the construction objects the event concerns.
func (ev WeldEvent) ObjectNames() []string {
	var names []string
	if ev.Weld != nil {
		names = append(names, StringOrEmpty(ev.Weld.ObjectName))
	}
	if ev.PreviousObjectName != nil {
		names = append(names, *ev.PreviousObjectName)
	}
	return names
}
