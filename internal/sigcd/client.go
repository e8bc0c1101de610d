// Package sigcd talks to the appointment-management sibling service.
package sigcd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	client  *http.Client
	baseURL string
}

// PacientesResponse is the paginated patient listing SIGCD returns
type PacientesResponse struct {
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	PageSize  int              `json:"pageSize"`
	Pacientes []PacienteRemoto `json:"pacientes"`
}

type PacienteRemoto struct {
	IDPaciente      int    `json:"id_paciente"`
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	Email           string `json:"email"`
}

// ConfirmarPagoRequest notifies SIGCD that an appointment was paid at the desk
type ConfirmarPagoRequest struct {
	IDPago      int     `json:"id_pago"`
	MontoPagado float64 `json:"monto_pagado"`
	MetodoPago  string  `json:"metodo_pago"`
	Origen      string  `json:"origen"`
	IDPaciente  int     `json:"id_paciente"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// ObtenerCitasPendientes fetches appointment summaries awaiting payment.
// The body is passed through to the caller untouched.
func (c *Client) ObtenerCitasPendientes(ctx context.Context) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/citas/resumen?estado_pago=PENDIENTE", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach SIGCD: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SIGCD returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read SIGCD response: %w", err)
	}

	return json.RawMessage(body), nil
}

// ObtenerPacientes pulls a page of patients for the local upsert sync
func (c *Client) ObtenerPacientes(ctx context.Context, page, pageSize int) (*PacientesResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	u := fmt.Sprintf("%s/pacientes?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach SIGCD: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SIGCD returned status %d", resp.StatusCode)
	}

	var out PacientesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode SIGCD response: %w", err)
	}

	return &out, nil
}

// ConfirmarPago posts the payment confirmation for an appointment
func (c *Client) ConfirmarPago(ctx context.Context, idCita int, pago ConfirmarPagoRequest) error {
	jsonData, err := json.Marshal(pago)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmar-pago request: %w", err)
	}

	u := fmt.Sprintf("%s/citas/%d/confirmar-pago", c.baseURL, idCita)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach SIGCD: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SIGCD confirmar-pago returned status %d", resp.StatusCode)
	}

	return nil
}
