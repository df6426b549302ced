package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/SamMurshed/MedQT/internal/models"
	"github.com/SamMurshed/MedQT/internal/predict"
	"github.com/SamMurshed/MedQT/internal/store"
	"github.com/SamMurshed/MedQT/internal/symptoms"
)

// ErrAdmissionFailed is the single externally-visible failure of Admit. The
// underlying cause stays on the error chain for errors.Is inspection. No
// appointment is written on this path and no queue position is reserved.
var ErrAdmissionFailed = errors.New("admission failed")

type Predictor interface {
	Estimate(ctx context.Context, symptomTags []string, queueSize int) (predict.Estimate, error)
}

// AdmitInput is the raw caller-supplied symptom report. Unknown tags and
// invalid free text are tolerated, not rejected.
type AdmitInput struct {
	Symptoms     []string
	OtherSymptom string
}

// QueueStatus is the dashboard view of a patient's place in the queue. Both
// fields are nil when the patient has no waiting appointment.
type QueueStatus struct {
	QueueNumber *int `json:"queue_number"`
	ETAMinutes  *int `json:"eta_minutes"`
}

type Service struct {
	store     store.AppointmentStore
	predictor Predictor
}

func NewService(appointments store.AppointmentStore, predictor Predictor) *Service {
	return &Service{
		store:     appointments,
		predictor: predictor,
	}
}

// Admit registers a patient into the waiting queue: it normalizes the
// symptom report, derives the queue position from the current waiting count,
// obtains a wait estimate, and persists the appointment. Insert is the only
// commit point; any earlier failure leaves the store untouched.
//
// Two concurrent admissions may observe the same waiting count and receive
// the same queue number. The number is a display hint, not a scheduling
// token, so the race is accepted rather than serialized.
func (s *Service) Admit(ctx context.Context, patientID string, input AdmitInput) (models.Appointment, error) {
	tags := symptoms.Normalize(input.Symptoms, input.OtherSymptom)

	waiting, err := s.store.CountWaiting(ctx)
	if err != nil {
		return models.Appointment{}, admissionError(err)
	}
	queueNumber := waiting + 1

	// The new patient counts toward the queue it is measured against.
	estimate, err := s.predictor.Estimate(ctx, tags, queueNumber)
	if err != nil {
		return models.Appointment{}, admissionError(err)
	}

	appointment := models.Appointment{
		PatientID:            patientID,
		Symptoms:             tags,
		Status:               models.StatusWaiting,
		QueueNumber:          queueNumber,
		PredictedWaitMinutes: estimate.PredictedWaitMinutes,
		PriorityScore:        estimate.PriorityScore,
	}

	stored, err := s.store.Insert(ctx, appointment)
	if err != nil {
		return models.Appointment{}, admissionError(err)
	}
	return stored, nil
}

// QueueStatus reports the waiting appointment for a patient, with the
// predicted wait truncated to whole minutes for display.
func (s *Service) QueueStatus(ctx context.Context, patientID string) (QueueStatus, error) {
	appointment, found, err := s.store.FindWaitingByPatient(ctx, patientID)
	if err != nil {
		return QueueStatus{}, err
	}
	if !found {
		return QueueStatus{}, nil
	}
	queueNumber := appointment.QueueNumber
	eta := int(appointment.PredictedWaitMinutes)
	return QueueStatus{QueueNumber: &queueNumber, ETAMinutes: &eta}, nil
}

func admissionError(cause error) error {
	return fmt.Errorf("%w: %w", ErrAdmissionFailed, cause)
}
