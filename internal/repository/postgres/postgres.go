package postgres

import (
	"database/sql"
	"errors"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ApplicationRepository
	repository.UserRepository
	repository.OfferingRepository
	repository.EnrollmentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ApplicationRepository: NewApplicationRepository(db),
		UserRepository:        NewUserRepository(db),
		OfferingRepository:    NewOfferingRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
	}
}

// translateErr maps driver errors to domain errors so services never
// see database/sql or lib/pq types.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}
