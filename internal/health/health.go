package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	EstadoOK        = "ok"
	EstadoDegradado = "degradado"
	EstadoCaido     = "caido"

	pingTimeout = 2 * time.Second
	// Above this the desk UI shows the "sistema lento" banner
	latenciaDegradadaMs = 500
)

// Checker reports whether the service can reach its database. The
// front desk UI polls this and treats anything but "ok" as offline.
type Checker struct {
	pool *pgxpool.Pool
}

type Reporte struct {
	Estado      string      `json:"estado"`
	BaseDeDatos Dependencia `json:"baseDeDatos"`
}

type Dependencia struct {
	Estado     string `json:"estado"`
	LatenciaMs int64  `json:"latenciaMs"`
}

func NewChecker(pool *pgxpool.Pool) *Checker {
	return &Checker{pool: pool}
}

// Revisar pings the pool and folds the result into the service-level
// estado: caido when the ping fails, degradado when it is slow.
func (c *Checker) Revisar(ctx context.Context) Reporte {
	bd := c.revisarBaseDeDatos(ctx)
	return Reporte{Estado: bd.Estado, BaseDeDatos: bd}
}

// Saludable is the readiness gate
func (c *Checker) Saludable(ctx context.Context) bool {
	return c.Revisar(ctx).Estado != EstadoCaido
}

func (c *Checker) revisarBaseDeDatos(ctx context.Context) Dependencia {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	inicio := time.Now()
	err := c.pool.Ping(ctx)
	latencia := time.Since(inicio).Milliseconds()

	return Dependencia{Estado: clasificar(err, latencia), LatenciaMs: latencia}
}

func clasificar(err error, latenciaMs int64) string {
	switch {
	case err != nil:
		return EstadoCaido
	case latenciaMs > latenciaDegradadaMs:
		return EstadoDegradado
	default:
		return EstadoOK
	}
}
