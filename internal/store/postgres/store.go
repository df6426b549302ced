package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SamMurshed/MedQT/internal/models"
	"github.com/SamMurshed/MedQT/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists appointments and looks up sessions on a shared pgx pool.
// The pool is created once in main and closed on shutdown.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CountWaiting(ctx context.Context) (int, error) {
	var count int
	row := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments WHERE status = $1
	`, models.StatusWaiting)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count waiting: %w: %w", store.ErrUnavailable, err)
	}
	return count, nil
}

// Insert writes a new appointment row and returns it with the assigned
// identity and creation timestamp. Existing rows are never touched.
func (s *Store) Insert(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	appointmentID := uuid.NewString()
	createdAt := appointment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO appointments (
			appointment_id, patient_id, symptoms, status, queue_number,
			predicted_wait_minutes, priority_score, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING appointment_id, created_at
	`, appointmentID, appointment.PatientID, appointment.Symptoms, appointment.Status,
		appointment.QueueNumber, appointment.PredictedWaitMinutes, appointment.PriorityScore, createdAt)

	if err := row.Scan(&appointment.AppointmentID, &appointment.CreatedAt); err != nil {
		return models.Appointment{}, fmt.Errorf("insert appointment: %w: %w", store.ErrUnavailable, err)
	}
	return appointment, nil
}

func (s *Store) FindWaitingByPatient(ctx context.Context, patientID string) (models.Appointment, bool, error) {
	var appointment models.Appointment
	row := s.pool.QueryRow(ctx, `
		SELECT appointment_id, patient_id, symptoms, status, queue_number,
		       predicted_wait_minutes, priority_score, created_at
		FROM appointments
		WHERE patient_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, patientID, models.StatusWaiting)
	if err := row.Scan(&appointment.AppointmentID, &appointment.PatientID, &appointment.Symptoms,
		&appointment.Status, &appointment.QueueNumber, &appointment.PredictedWaitMinutes,
		&appointment.PriorityScore, &appointment.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, false, nil
		}
		return models.Appointment{}, false, fmt.Errorf("find waiting appointment: %w: %w", store.ErrUnavailable, err)
	}
	return appointment, true, nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (store.Session, error) {
	var session store.Session
	row := s.pool.QueryRow(ctx, `
		SELECT session_id, patient_id, expires_at
		FROM sessions
		WHERE session_id = $1 AND expires_at > now()
	`, sessionID)
	if err := row.Scan(&session.SessionID, &session.PatientID, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Session{}, store.ErrSessionNotFound
		}
		return store.Session{}, fmt.Errorf("get session: %w: %w", store.ErrUnavailable, err)
	}
	return session, nil
}
