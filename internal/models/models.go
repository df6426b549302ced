package models

import "time"

// Appointment is the durable record of one triage event. It is created once
// at admission and never updated by this service; status transitions past
// waiting belong to clinic-side tooling.
type Appointment struct {
	AppointmentID        string    `json:"appointment_id"`
	PatientID            string    `json:"patient_id"`
	Symptoms             []string  `json:"symptoms"`
	Status               string    `json:"status"`
	QueueNumber          int       `json:"queue_number"`
	PredictedWaitMinutes float64   `json:"predicted_wait_minutes"`
	PriorityScore        float64   `json:"priority_score"`
	CreatedAt            time.Time `json:"created_at"`
}

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)
