package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresEmployeeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEmployeeRepository(db *pgxpool.Pool) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

func (r *PostgresEmployeeRepository) Save(employee *Employee) error {
	query := `
		INSERT INTO employees (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(context.Background(), query,
		employee.Name, employee.Email, employee.Password, employee.Role,
	).Scan(&employee.ID)
}

func (r *PostgresEmployeeRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM employees WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	err := row.Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresEmployeeRepository) FindByEmail(email string) (*Employee, error) {
	query := `
		SELECT id, name, email, password, role
		FROM employees WHERE email=$1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	employee := &Employee{}
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.Password,
		&employee.Role,
	); err != nil {
		return nil, errors.New("employee not found")
	}
	return employee, nil
}
