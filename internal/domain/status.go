package domain

import "strings"

// Status is the lifecycle stage of a job application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// Statuses lists every valid status in board order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ParseStatus accepts only the four exact lowercase values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		names := make([]string, len(Statuses))
		for i, v := range Statuses {
			names[i] = string(v)
		}
		return "", Invalid("status", "status must be one of: "+strings.Join(names, ", "))
	}
	return s, nil
}
