package repositories

import (
	"context"
	"errors"
	"fmt"

	"clinica-caja/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PresupuestoRepository struct {
	DB *pgxpool.Pool
}

func NewPresupuestoRepository(db *pgxpool.Pool) *PresupuestoRepository {
	return &PresupuestoRepository{DB: db}
}

// CrearConDetalles persists the quote header, its valid line items and
// the final total in a single transaction, so a crash can never leave a
// header without lines or lines without a total.
func (r *PresupuestoRepository) CrearConDetalles(ctx context.Context, p *models.Presupuesto, detalles []models.DetallePresupuesto) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO presupuesto (id_paciente, fecha_emision, fecha_vigencia, total, estado_presupuesto)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id_presupuesto
	`, p.IDPaciente, p.FechaEmision, p.FechaVigencia, p.EstadoPresupuesto).Scan(&p.IDPresupuesto)
	if err != nil {
		return fmt.Errorf("failed to insert presupuesto: %w", err)
	}

	total := 0.0
	for _, d := range detalles {
		_, err = tx.Exec(ctx, `
			INSERT INTO detalle_presupuesto (id_presupuesto, id_tratamiento, cantidad, precio_unitario, precio_total)
			VALUES ($1, $2, $3, $4, $5)
		`, p.IDPresupuesto, d.IDTratamiento, d.Cantidad, d.PrecioUnitario, d.PrecioTotal)
		if err != nil {
			return fmt.Errorf("failed to insert detalle: %w", err)
		}
		total += d.PrecioTotal
	}

	_, err = tx.Exec(ctx, `
		UPDATE presupuesto SET total = $1 WHERE id_presupuesto = $2
	`, total, p.IDPresupuesto)
	if err != nil {
		return fmt.Errorf("failed to update total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit presupuesto: %w", err)
	}

	p.Total = total
	return nil
}

func (r *PresupuestoRepository) List(ctx context.Context) ([]*models.Presupuesto, error) {
	query := `
		SELECT pr.id_presupuesto, pr.id_paciente, pr.fecha_emision, pr.fecha_vigencia,
		       pr.total, pr.estado_presupuesto,
		       COALESCE(pa.nombre || ' ' || pa.apellido, '')
		FROM presupuesto pr
		LEFT JOIN paciente pa ON pr.id_paciente = pa.id_paciente
		ORDER BY pr.id_presupuesto DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presupuestos []*models.Presupuesto
	for rows.Next() {
		p := &models.Presupuesto{}
		err := rows.Scan(
			&p.IDPresupuesto,
			&p.IDPaciente,
			&p.FechaEmision,
			&p.FechaVigencia,
			&p.Total,
			&p.EstadoPresupuesto,
			&p.NombrePaciente,
		)
		if err != nil {
			return nil, err
		}
		presupuestos = append(presupuestos, p)
	}

	return presupuestos, rows.Err()
}

func (r *PresupuestoRepository) GetByID(ctx context.Context, id int) (*models.Presupuesto, error) {
	query := `
		SELECT id_presupuesto, id_paciente, fecha_emision, fecha_vigencia, total, estado_presupuesto
		FROM presupuesto
		WHERE id_presupuesto = $1
	`

	p := &models.Presupuesto{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.IDPresupuesto,
		&p.IDPaciente,
		&p.FechaEmision,
		&p.FechaVigencia,
		&p.Total,
		&p.EstadoPresupuesto,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PresupuestoRepository) GetDetalles(ctx context.Context, idPresupuesto int) ([]models.DetallePresupuesto, error) {
	query := `
		SELECT d.id_tratamiento, t.nombre_tratamiento, d.cantidad, d.precio_unitario, d.precio_total
		FROM detalle_presupuesto d
		JOIN tratamiento t ON d.id_tratamiento = t.id_tratamiento
		WHERE d.id_presupuesto = $1
	`

	rows, err := r.DB.Query(ctx, query, idPresupuesto)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detalles []models.DetallePresupuesto
	for rows.Next() {
		var d models.DetallePresupuesto
		err := rows.Scan(
			&d.IDTratamiento,
			&d.NombreTratamiento,
			&d.Cantidad,
			&d.PrecioUnitario,
			&d.PrecioTotal,
		)
		if err != nil {
			return nil, err
		}
		detalles = append(detalles, d)
	}

	return detalles, rows.Err()
}
