package sigcd

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://sigcd.test"

func TestObtenerCitasPendientes(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/citas/resumen",
		httpmock.NewStringResponder(200, `[{"id_cita": 3, "estado_pago": "PENDIENTE"}]`))

	c := NewClient(baseURL, 2*time.Second)
	body, err := c.ObtenerCitasPendientes(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id_cita": 3, "estado_pago": "PENDIENTE"}]`, string(body))
}

func TestObtenerCitasPendientesError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/citas/resumen",
		httpmock.NewStringResponder(500, "boom"))

	c := NewClient(baseURL, 2*time.Second)
	_, err := c.ObtenerCitasPendientes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestObtenerPacientes(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/pacientes",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "2", req.URL.Query().Get("page"))
			assert.Equal(t, "50", req.URL.Query().Get("pageSize"))
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"total":    1,
				"page":     2,
				"pageSize": 50,
				"pacientes": []map[string]interface{}{
					{"id_paciente": 9, "nombre": "Laura", "apellidos": "Mendez", "email": "laura@test.mx"},
				},
			})
		})

	c := NewClient(baseURL, 2*time.Second)
	resp, err := c.ObtenerPacientes(context.Background(), 2, 50)
	require.NoError(t, err)

	require.Len(t, resp.Pacientes, 1)
	assert.Equal(t, 9, resp.Pacientes[0].IDPaciente)
	assert.Equal(t, "Mendez", resp.Pacientes[0].Apellidos)
}

func TestConfirmarPago(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/citas/55/confirmar-pago",
		httpmock.NewStringResponder(200, `{"ok": true}`))

	c := NewClient(baseURL, 2*time.Second)
	err := c.ConfirmarPago(context.Background(), 55, ConfirmarPagoRequest{
		IDPago:      3,
		MontoPagado: 350,
		MetodoPago:  "TARJETA",
		Origen:      "caja",
		IDPaciente:  1,
	})
	require.NoError(t, err)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["POST "+baseURL+"/citas/55/confirmar-pago"])
}

func TestConfirmarPagoRechazado(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/citas/55/confirmar-pago",
		httpmock.NewStringResponder(409, `{"error": "ya pagada"}`))

	c := NewClient(baseURL, 2*time.Second)
	err := c.ConfirmarPago(context.Background(), 55, ConfirmarPagoRequest{IDPago: 3})
	require.Error(t, err)
}
