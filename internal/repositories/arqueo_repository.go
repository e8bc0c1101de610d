package repositories

import (
	"context"
	"errors"

	"clinica-caja/internal/models"
	"clinica-caja/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArqueoRepository struct {
	DB *pgxpool.Pool
}

func NewArqueoRepository(db *pgxpool.Pool) *ArqueoRepository {
	return &ArqueoRepository{DB: db}
}

// UltimoDelDia returns the most recently saved arqueo for the given
// clinic-local date, or nil when none has been saved yet today.
func (r *ArqueoRepository) UltimoDelDia(ctx context.Context, fecha string) (*models.Arqueo, error) {
	query := `
		SELECT id_arqueo, to_char(fecha, 'YYYY-MM-DD'), to_char(hora_generacion, 'HH24:MI:SS'),
		       total_efectivo, total_tarjeta, total_transferencia, total_general,
		       cantidad_pagos, usuario_registro, observaciones, created_at
		FROM arqueo
		WHERE fecha = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	a := &models.Arqueo{}
	err := r.DB.QueryRow(ctx, query, fecha).Scan(
		&a.IDArqueo,
		&a.Fecha,
		&a.HoraGeneracion,
		&a.TotalEfectivo,
		&a.TotalTarjeta,
		&a.TotalTransferencia,
		&a.TotalGeneral,
		&a.CantidadPagos,
		&a.UsuarioRegistro,
		&a.Observaciones,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

// ResumenPagos groups payments by method inside the reconciliation
// window: strictly after desde (clinic-local timestamp) and still on
// the clinic-local date fecha. Comparing in the clinic zone keeps
// payments stamped near midnight UTC on the right business day.
func (r *ArqueoRepository) ResumenPagos(ctx context.Context, desde string, fecha string) ([]models.PagoResumen, error) {
	query := `
		SELECT metodo_pago, COUNT(*) AS cantidad, COALESCE(SUM(monto), 0) AS total
		FROM pago
		WHERE (fecha_pago AT TIME ZONE '` + timeutil.ZoneName + `') > $1::timestamp
		  AND (fecha_pago AT TIME ZONE '` + timeutil.ZoneName + `')::date = $2::date
		GROUP BY metodo_pago
	`

	rows, err := r.DB.Query(ctx, query, desde, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumen []models.PagoResumen
	for rows.Next() {
		var pr models.PagoResumen
		if err := rows.Scan(&pr.MetodoPago, &pr.Cantidad, &pr.Total); err != nil {
			return nil, err
		}
		resumen = append(resumen, pr)
	}

	return resumen, rows.Err()
}

func (r *ArqueoRepository) Insertar(ctx context.Context, a *models.Arqueo) error {
	query := `
		INSERT INTO arqueo (fecha, hora_generacion, total_efectivo, total_tarjeta,
		                    total_transferencia, total_general, cantidad_pagos,
		                    usuario_registro, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_arqueo, created_at
	`

	return r.DB.QueryRow(ctx, query,
		a.Fecha,
		a.HoraGeneracion,
		a.TotalEfectivo,
		a.TotalTarjeta,
		a.TotalTransferencia,
		a.TotalGeneral,
		a.CantidadPagos,
		a.UsuarioRegistro,
		a.Observaciones,
	).Scan(&a.IDArqueo, &a.CreatedAt)
}

func (r *ArqueoRepository) Listar(ctx context.Context) ([]*models.Arqueo, error) {
	query := `
		SELECT id_arqueo, to_char(fecha, 'YYYY-MM-DD'), to_char(hora_generacion, 'HH24:MI:SS'),
		       total_efectivo, total_tarjeta, total_transferencia, total_general,
		       cantidad_pagos, usuario_registro, observaciones, created_at
		FROM arqueo
		ORDER BY fecha DESC, hora_generacion DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var arqueos []*models.Arqueo
	for rows.Next() {
		a := &models.Arqueo{}
		err := rows.Scan(
			&a.IDArqueo,
			&a.Fecha,
			&a.HoraGeneracion,
			&a.TotalEfectivo,
			&a.TotalTarjeta,
			&a.TotalTransferencia,
			&a.TotalGeneral,
			&a.CantidadPagos,
			&a.UsuarioRegistro,
			&a.Observaciones,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		arqueos = append(arqueos, a)
	}

	return arqueos, rows.Err()
}

func (r *ArqueoRepository) PorID(ctx context.Context, id int) (*models.Arqueo, error) {
	query := `
		SELECT id_arqueo, to_char(fecha, 'YYYY-MM-DD'), to_char(hora_generacion, 'HH24:MI:SS'),
		       total_efectivo, total_tarjeta, total_transferencia, total_general,
		       cantidad_pagos, usuario_registro, observaciones, created_at
		FROM arqueo
		WHERE id_arqueo = $1
	`

	a := &models.Arqueo{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&a.IDArqueo,
		&a.Fecha,
		&a.HoraGeneracion,
		&a.TotalEfectivo,
		&a.TotalTarjeta,
		&a.TotalTransferencia,
		&a.TotalGeneral,
		&a.CantidadPagos,
		&a.UsuarioRegistro,
		&a.Observaciones,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return a, nil
}
