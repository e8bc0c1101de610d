// Package atencion talks to the clinical-care sibling service.
package atencion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clinica-caja/internal/models"
)

type Client struct {
	client           *http.Client
	baseURL          string
	catalogoEndpoint string
}

// ResumenPresupuesto is the quote summary pushed after a quote is created
type ResumenPresupuesto struct {
	IDPresupuesto int                         `json:"idPresupuesto"`
	IDPaciente    int                         `json:"idPaciente"`
	FechaEmision  time.Time                   `json:"fechaEmision"`
	FechaVigencia time.Time                   `json:"fechaVigencia"`
	Total         float64                     `json:"total"`
	Detalles      []models.DetallePresupuesto `json:"detalles"`
}

// CatalogoPayload carries the whole local treatment catalog
type CatalogoPayload struct {
	Origen       string                `json:"origen"`
	FechaEnvio   time.Time             `json:"fecha_envio"`
	Tratamientos []TratamientoCatalogo `json:"tratamientos"`
}

type TratamientoCatalogo struct {
	CveTrat     int     `json:"cve_trat"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	PrecioBase  float64 `json:"precio_base"`
	Activo      int     `json:"activo"`
}

func NewClient(baseURL, catalogoEndpoint string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:          baseURL,
		catalogoEndpoint: catalogoEndpoint,
	}
}

// EnviarPresupuesto forwards a quote summary. Callers treat failures as
// best-effort: the local quote stays committed either way.
func (c *Client) EnviarPresupuesto(ctx context.Context, resumen ResumenPresupuesto) error {
	return c.post(ctx, c.baseURL+"/presupuestos", resumen)
}

// EnviarCatalogo pushes the full treatment catalog. This one is a
// read-through: the caller surfaces the failure to its client.
func (c *Client) EnviarCatalogo(ctx context.Context, payload CatalogoPayload) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalogo payload: %w", err)
	}

	u := c.baseURL + c.catalogoEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Atencion: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Atencion returned status %d: %s", resp.StatusCode, string(body))
	}

	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

func (c *Client) post(ctx context.Context, u string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Atencion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Atencion returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
