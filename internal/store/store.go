package store

import (
	"context"
	"time"

	"github.com/SamMurshed/MedQT/internal/models"
)

// AppointmentStore is the persistence boundary for the admission flow.
// Insert is the single commit point of an admission; CountWaiting is a
// point-in-time snapshot with no ordering guarantee against concurrent
// writers beyond what the database provides.
type AppointmentStore interface {
	CountWaiting(ctx context.Context) (int, error)
	Insert(ctx context.Context, appointment models.Appointment) (models.Appointment, error)
	FindWaitingByPatient(ctx context.Context, patientID string) (models.Appointment, bool, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
}

type Session struct {
	SessionID string
	PatientID string
	ExpiresAt time.Time
}
