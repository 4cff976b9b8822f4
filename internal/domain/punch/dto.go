package punch

import "time"

// EventResponse is the raw punch trail view served for investigating how a
// record was derived.
type EventResponse struct {
	ID         string `json:"id"`
	PunchTime  string `json:"punch_time"`
	State      string `json:"state"`
	TerminalID string `json:"terminal_id"`
}

func NewEventResponse(e RawEvent) EventResponse {
	return EventResponse{
		ID:         e.ID,
		PunchTime:  e.PunchTime.Format(time.RFC3339),
		State:      string(e.State),
		TerminalID: e.TerminalID,
	}
}
