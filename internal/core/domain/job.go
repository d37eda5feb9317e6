package domain

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	StatusNew        JobStatus = "NEW"
	StatusScheduled  JobStatus = "SCHEDULED"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusDone       JobStatus = "DONE"
	StatusCancelled  JobStatus = "CANCELLED"
)

// JobStatuses lists every valid status, in display order.
var JobStatuses = []JobStatus{
	StatusNew,
	StatusScheduled,
	StatusInProgress,
	StatusDone,
	StatusCancelled,
}

// ParseJobStatus converts a raw string into a JobStatus, rejecting anything
// outside the closed set.
func ParseJobStatus(s string) (JobStatus, error) {
	for _, st := range JobStatuses {
		if JobStatus(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Job is a unit of service work for a client, optionally assigned to a user.
// Any status may follow any other status: admins drive the status field freely
// and the domain does not impose a directed transition graph.
type Job struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64    `json:"price,omitempty" bson:"price,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
	ClientID     string     `json:"client_id" bson:"client_id"`
	AssignedToID string     `json:"assigned_to_id,omitempty" bson:"assigned_to_id,omitempty"`
	Status       JobStatus  `json:"status" bson:"status"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// AssignedTo reports whether the job is currently assigned to the given user.
// An unassigned job belongs to nobody.
func (j *Job) AssignedTo(userID string) bool {
	return j.AssignedToID != "" && j.AssignedToID == userID
}
