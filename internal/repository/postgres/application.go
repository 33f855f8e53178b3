package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/repository"
)

const applicationColumns = `id, name, email, phone_number, specialization, experience_years, motivation,
	COALESCE(academic_info, ''), COALESCE(profession_info, ''), document_url,
	status, membership_type, COALESCE(resolution_note, ''), created_on`

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (name, email, phone_number, specialization, experience_years, motivation, academic_info, profession_info, document_url, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	app.CreatedOn = time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query,
		app.Name, app.Email, app.PhoneNumber, app.Specialization, app.ExperienceYrs,
		app.Motivation, app.AcademicInfo, app.ProfessionInfo, app.DocumentURL,
		app.Status, app.CreatedOn,
	).Scan(&app.ID)
}

func scanApplication(row interface{ Scan(...any) error }) (*domain.Application, error) {
	app := &domain.Application{}
	var membershipType sql.NullString
	var createdOn time.Time
	err := row.Scan(&app.ID, &app.Name, &app.Email, &app.PhoneNumber, &app.Specialization,
		&app.ExperienceYrs, &app.Motivation, &app.AcademicInfo, &app.ProfessionInfo,
		&app.DocumentURL, &app.Status, &membershipType, &app.ResolutionNote, &createdOn)
	if err != nil {
		return nil, err
	}
	if membershipType.Valid {
		mt := domain.MembershipType(membershipType.String)
		app.MembershipType = &mt
	}
	app.CreatedOn = createdOn.Format("2006-01-02")
	return app, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return app, nil
}

func (r *applicationRepository) UpdateDecision(ctx context.Context, id int32, status domain.ApplicationStatus, membershipType *domain.MembershipType, note string) error {
	query := `UPDATE applications SET status = $1, membership_type = $2, resolution_note = $3
	          WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, status, membershipType, note, id, domain.ApplicationStatusPending)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the row is gone or it already left PENDING.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *applicationRepository) MarkPaidAndCreateMember(ctx context.Context, id int32, member *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock the application row so a concurrent confirm sees the final
	// status instead of racing the member insert.
	var status domain.ApplicationStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		return translateErr(err)
	}
	if status != domain.ApplicationStatusPaymentPending {
		return domain.ErrInvalidTransition
	}

	member.CreatedOn = time.Now().Format("2006-01-02")
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, name, phone_number, password_hash, role, membership_type, payment_status, is_active, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		member.Email, member.Name, member.PhoneNumber, member.PasswordHash, member.Role,
		member.MembershipType, member.PaymentStatus, member.IsActive, member.CreatedOn,
	).Scan(&member.ID)
	if err != nil {
		return translateErr(err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, domain.ApplicationStatusPaid, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status = $1 ORDER BY created_on DESC, id DESC`
	return r.list(ctx, query, status)
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_on DESC, id DESC`
	return r.list(ctx, query)
}

func (r *applicationRepository) ListPaymentPendingOlderThan(ctx context.Context, days int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
	          WHERE status = $1 AND created_on < NOW() - ($2 || ' days')::interval`
	return r.list(ctx, query, domain.ApplicationStatusPaymentPending, fmt.Sprintf("%d", days))
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
