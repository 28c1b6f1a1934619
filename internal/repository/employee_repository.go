package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

const uniqueViolationCode = "23505"

// EmployeeRepository handles persistence for the employee directory.
type EmployeeRepository interface {
	// Create persists the record and assigns its ID. A concurrent insert of
	// the same CPF surfaces as a CONFLICT via the unique constraint.
	Create(ctx context.Context, employee *domain.Employee) error
	// GetByCPF returns (nil, nil) when no record matches.
	GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error)
	// DeleteByCPF fails with pgx.ErrNoRows when no record matches; callers
	// check existence first.
	DeleteByCPF(ctx context.Context, cpf string) error
	List(ctx context.Context) ([]domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (cpf, name)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`

	var id int64
	err := r.pool.QueryRow(ctx, query, employee.CPF, employee.Name).
		Scan(&id, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewConflict("employee with this CPF already exists", map[string]any{"cpf": employee.CPF})
		}
		return err
	}
	employee.ID = &id
	return nil
}

func (r *employeeRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error) {
	const query = `
        SELECT id, cpf, name, created_at, updated_at
        FROM employees WHERE cpf=$1`

	var (
		employee domain.Employee
		id       int64
	)
	err := r.pool.QueryRow(ctx, query, cpf).Scan(
		&id,
		&employee.CPF,
		&employee.Name,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	employee.ID = &id
	return &employee, nil
}

func (r *employeeRepository) DeleteByCPF(ctx context.Context, cpf string) error {
	const query = `DELETE FROM employees WHERE cpf=$1`

	cmd, err := r.pool.Exec(ctx, query, cpf)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `
        SELECT id, cpf, name, created_at, updated_at
        FROM employees ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var (
			employee domain.Employee
			id       int64
		)
		if err := rows.Scan(
			&id,
			&employee.CPF,
			&employee.Name,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employee.ID = &id
		result = append(result, employee)
	}
	return result, rows.Err()
}
