package repositories

import (
	"context"
	"errors"

	"clinica-caja/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TratamientoRepository struct {
	DB *pgxpool.Pool
}

func NewTratamientoRepository(db *pgxpool.Pool) *TratamientoRepository {
	return &TratamientoRepository{DB: db}
}

func (r *TratamientoRepository) List(ctx context.Context) ([]*models.Tratamiento, error) {
	query := `
		SELECT id_tratamiento, nombre_tratamiento, COALESCE(descripcion, ''), precio_base
		FROM tratamiento
		ORDER BY id_tratamiento
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tratamientos []*models.Tratamiento
	for rows.Next() {
		t := &models.Tratamiento{}
		err := rows.Scan(
			&t.IDTratamiento,
			&t.NombreTratamiento,
			&t.Descripcion,
			&t.PrecioBase,
		)
		if err != nil {
			return nil, err
		}
		tratamientos = append(tratamientos, t)
	}

	return tratamientos, rows.Err()
}

func (r *TratamientoRepository) GetByID(ctx context.Context, id int) (*models.Tratamiento, error) {
	query := `
		SELECT id_tratamiento, nombre_tratamiento, COALESCE(descripcion, ''), precio_base
		FROM tratamiento
		WHERE id_tratamiento = $1
	`

	t := &models.Tratamiento{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&t.IDTratamiento,
		&t.NombreTratamiento,
		&t.Descripcion,
		&t.PrecioBase,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TratamientoRepository) Create(ctx context.Context, t *models.Tratamiento) error {
	query := `
		INSERT INTO tratamiento (nombre_tratamiento, descripcion, precio_base)
		VALUES ($1, $2, $3)
		RETURNING id_tratamiento
	`

	return r.DB.QueryRow(ctx, query,
		t.NombreTratamiento,
		t.Descripcion,
		t.PrecioBase,
	).Scan(&t.IDTratamiento)
}

// Upsert aligns a treatment with the id SIGCD assigned it, so both
// systems keep the same keys. Returns true when inserted.
func (r *TratamientoRepository) Upsert(ctx context.Context, t *models.Tratamiento) (bool, error) {
	query := `
		INSERT INTO tratamiento (id_tratamiento, nombre_tratamiento, descripcion, precio_base)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id_tratamiento) DO UPDATE SET
			nombre_tratamiento = EXCLUDED.nombre_tratamiento,
			descripcion        = EXCLUDED.descripcion,
			precio_base        = EXCLUDED.precio_base
		RETURNING (xmax = 0)
	`

	var inserted bool
	err := r.DB.QueryRow(ctx, query,
		t.IDTratamiento,
		t.NombreTratamiento,
		t.Descripcion,
		t.PrecioBase,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}
