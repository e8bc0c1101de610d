package repositories

import (
	"context"
	"errors"

	"clinica-caja/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PacienteRepository struct {
	DB *pgxpool.Pool
}

func NewPacienteRepository(db *pgxpool.Pool) *PacienteRepository {
	return &PacienteRepository{DB: db}
}

func (r *PacienteRepository) List(ctx context.Context) ([]*models.Paciente, error) {
	query := `
		SELECT id_paciente, nombre, apellido,
		       to_char(fecha_nac, 'YYYY-MM-DD'),
		       COALESCE(direccion, ''), COALESCE(correo, ''), fecha_registro
		FROM paciente
		ORDER BY id_paciente DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pacientes []*models.Paciente
	for rows.Next() {
		p := &models.Paciente{}
		err := rows.Scan(
			&p.IDPaciente,
			&p.Nombre,
			&p.Apellido,
			&p.FechaNac,
			&p.Direccion,
			&p.Correo,
			&p.FechaRegistro,
		)
		if err != nil {
			return nil, err
		}
		pacientes = append(pacientes, p)
	}

	return pacientes, rows.Err()
}

func (r *PacienteRepository) GetByID(ctx context.Context, id int) (*models.Paciente, error) {
	query := `
		SELECT id_paciente, nombre, apellido,
		       to_char(fecha_nac, 'YYYY-MM-DD'),
		       COALESCE(direccion, ''), COALESCE(correo, ''), fecha_registro
		FROM paciente
		WHERE id_paciente = $1
	`

	p := &models.Paciente{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.IDPaciente,
		&p.Nombre,
		&p.Apellido,
		&p.FechaNac,
		&p.Direccion,
		&p.Correo,
		&p.FechaRegistro,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PacienteRepository) Create(ctx context.Context, p *models.Paciente) error {
	query := `
		INSERT INTO paciente (nombre, apellido, fecha_nac, direccion, correo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_paciente, fecha_registro
	`

	return r.DB.QueryRow(ctx, query,
		p.Nombre,
		p.Apellido,
		p.FechaNac,
		p.Direccion,
		p.Correo,
	).Scan(&p.IDPaciente, &p.FechaRegistro)
}

func (r *PacienteRepository) Update(ctx context.Context, id int, p *models.CrearPacienteRequest) error {
	query := `
		UPDATE paciente
		SET nombre = $1, apellido = $2, fecha_nac = $3, direccion = $4, correo = $5
		WHERE id_paciente = $6
	`

	tag, err := r.DB.Exec(ctx, query,
		p.Nombre,
		p.Apellido,
		p.FechaNac,
		p.Direccion,
		p.Correo,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PacienteRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM paciente WHERE id_paciente = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Upsert inserts or updates a patient keyed by its SIGCD id.
// Returns true when the row was inserted, false when updated.
func (r *PacienteRepository) Upsert(ctx context.Context, p *models.Paciente) (bool, error) {
	query := `
		INSERT INTO paciente (id_paciente, nombre, apellido, fecha_nac, direccion, correo)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id_paciente) DO UPDATE SET
			nombre    = EXCLUDED.nombre,
			apellido  = EXCLUDED.apellido,
			fecha_nac = EXCLUDED.fecha_nac,
			direccion = EXCLUDED.direccion,
			correo    = EXCLUDED.correo
		RETURNING (xmax = 0)
	`

	var inserted bool
	err := r.DB.QueryRow(ctx, query,
		p.IDPaciente,
		p.Nombre,
		p.Apellido,
		p.FechaNac,
		p.Direccion,
		p.Correo,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}
