package repositories

import (
	"context"
	"errors"

	"clinica-caja/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PagoRepository struct {
	DB *pgxpool.Pool
}

func NewPagoRepository(db *pgxpool.Pool) *PagoRepository {
	return &PagoRepository{DB: db}
}

func (r *PagoRepository) Create(ctx context.Context, p *models.Pago) error {
	query := `
		INSERT INTO pago (id_presupuesto, id_paciente, monto, metodo_pago, referencia)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_pago, fecha_pago
	`

	return r.DB.QueryRow(ctx, query,
		p.IDPresupuesto,
		p.IDPaciente,
		p.Monto,
		p.MetodoPago,
		p.Referencia,
	).Scan(&p.IDPago, &p.FechaPago)
}

func (r *PagoRepository) GetByID(ctx context.Context, id int) (*models.Pago, error) {
	query := `
		SELECT id_pago, id_presupuesto, COALESCE(id_paciente, 0), monto, metodo_pago, fecha_pago, referencia
		FROM pago
		WHERE id_pago = $1
	`

	p := &models.Pago{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.IDPago,
		&p.IDPresupuesto,
		&p.IDPaciente,
		&p.Monto,
		&p.MetodoPago,
		&p.FechaPago,
		&p.Referencia,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PagoRepository) ListByPaciente(ctx context.Context, idPaciente int) ([]*models.Pago, error) {
	query := `
		SELECT id_pago, id_presupuesto, COALESCE(id_paciente, 0), monto, metodo_pago, fecha_pago, referencia
		FROM pago
		WHERE id_paciente = $1
		ORDER BY fecha_pago DESC
	`

	rows, err := r.DB.Query(ctx, query, idPaciente)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pagos []*models.Pago
	for rows.Next() {
		p := &models.Pago{}
		err := rows.Scan(
			&p.IDPago,
			&p.IDPresupuesto,
			&p.IDPaciente,
			&p.Monto,
			&p.MetodoPago,
			&p.FechaPago,
			&p.Referencia,
		)
		if err != nil {
			return nil, err
		}
		pagos = append(pagos, p)
	}

	return pagos, rows.Err()
}

// GetComprobanteData joins the payment with its patient and quote for
// the PDF receipt. The quote may be absent for direct payments.
func (r *PagoRepository) GetComprobanteData(ctx context.Context, idPago int) (*models.ComprobanteData, error) {
	pago, err := r.GetByID(ctx, idPago)
	if err != nil {
		return nil, err
	}

	data := &models.ComprobanteData{Pago: pago}

	if pago.IDPaciente > 0 {
		var pac models.Paciente
		err = r.DB.QueryRow(ctx, `
			SELECT id_paciente, nombre, apellido, COALESCE(correo, ''), COALESCE(direccion, '')
			FROM paciente WHERE id_paciente = $1
		`, pago.IDPaciente).Scan(&pac.IDPaciente, &pac.Nombre, &pac.Apellido, &pac.Correo, &pac.Direccion)
		if err == nil {
			data.Paciente = &pac
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if pago.IDPresupuesto != nil {
		var pr models.Presupuesto
		err = r.DB.QueryRow(ctx, `
			SELECT id_presupuesto, id_paciente, fecha_emision, fecha_vigencia, total, estado_presupuesto
			FROM presupuesto WHERE id_presupuesto = $1
		`, *pago.IDPresupuesto).Scan(&pr.IDPresupuesto, &pr.IDPaciente, &pr.FechaEmision, &pr.FechaVigencia, &pr.Total, &pr.EstadoPresupuesto)
		if err == nil {
			data.Presupuesto = &pr
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	return data, nil
}
