package readstore

import (
	"context"

	"therapy-booking/internal/infra"
	sqlc "therapy-booking/internal/infra/sqlc/generated"
	"therapy-booking/internal/pkg/pgconv"
	"therapy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DirectoryReadQueries interface {
	GetTherapist(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Therapists, error)
	GetTherapistByUserID(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.Therapists, error)
	GetPatient(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Patients, error)
	GetPatientByUserID(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.Patients, error)
}

// DirectoryReadStore reads the therapist and patient projections.
type DirectoryReadStore struct {
	queries DirectoryReadQueries
}

func NewDirectoryReadStore(queries DirectoryReadQueries) *DirectoryReadStore {
	return &DirectoryReadStore{
		queries: queries,
	}
}

func (r *DirectoryReadStore) TherapistByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*shared.TherapistSnapshot, error) {
	row, err := r.queries.GetTherapist(ctx, db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find therapist", err)
	}
	return toTherapistSnapshot(row), nil
}

func (r *DirectoryReadStore) TherapistByUserID(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (*shared.TherapistSnapshot, error) {
	row, err := r.queries.GetTherapistByUserID(ctx, db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find therapist by user", err)
	}
	return toTherapistSnapshot(row), nil
}

func (r *DirectoryReadStore) PatientByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*shared.PatientSnapshot, error) {
	row, err := r.queries.GetPatient(ctx, db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find patient", err)
	}
	return toPatientSnapshot(row), nil
}

func (r *DirectoryReadStore) PatientByUserID(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (*shared.PatientSnapshot, error) {
	row, err := r.queries.GetPatientByUserID(ctx, db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find patient by user", err)
	}
	return toPatientSnapshot(row), nil
}

func toTherapistSnapshot(row sqlc.Therapists) *shared.TherapistSnapshot {
	return &shared.TherapistSnapshot{
		ID:               row.ID,
		UserID:           row.UserID,
		Name:             row.Name,
		SessionRateCents: row.SessionRateCents,
	}
}

func toPatientSnapshot(row sqlc.Patients) *shared.PatientSnapshot {
	return &shared.PatientSnapshot{
		ID:             row.ID,
		UserID:         row.UserID,
		GuardianUserID: pgconv.UUIDPtrFromPgtype(row.GuardianUserID),
		Name:           row.Name,
		Email:          row.Email,
		Phone:          row.Phone,
	}
}
