package reconciliation_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bom-merger/feature/reconciliation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t)

	feature := reconciliation.NewFeature(svc)
	assert.Equal(t, "reconciliation", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		name := "bom.csv"
		if field == "placement" {
			name = "xy.csv"
		}
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/reconcile", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// TestHandler_ReviewFlow tests a run from upload to export over HTTP.
func TestHandler_ReviewFlow(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(multipartRequest(t,
		map[string]string{"name": "Board A"},
		map[string]string{"parts": partsCSV, "placement": placementCSV},
	), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Exportable bool   `json:"exportable"`
		Summary    struct {
			PlacementErrors int `json:"placement_errors"`
		} `json:"summary"`
		Records []struct {
			Designator string `json:"designator"`
			Status     string `json:"status"`
		} `json:"records"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "Board A", created.Name)
	assert.False(t, created.Exportable)
	assert.Equal(t, 1, created.Summary.PlacementErrors)
	require.Len(t, created.Records, 6)
	assert.Equal(t, "PLACEMENT_ONLY", created.Records[4].Status)

	base := "/runs/" + created.ID

	// Export is refused while U9 is unresolved.
	resp, err = app.Test(httptest.NewRequest("POST", base+"/export", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PATCH", base+"/records/U9", `{"is_suppressed":true,"remark":"not fitted"}`), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var rec map[string]any
	decode(t, resp, &rec)
	assert.Equal(t, true, rec["is_suppressed"])
	assert.Equal(t, "not fitted", rec["remark"])

	resp, err = app.Test(jsonRequest("POST", base+"/suppress", `{"pattern":"TP*"}`), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var suppressed map[string]int
	decode(t, resp, &suppressed)
	assert.Equal(t, 0, suppressed["suppressed"])

	resp, err = app.Test(httptest.NewRequest("POST", base+"/export", nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var exported map[string]string
	decode(t, resp, &exported)
	assert.Equal(t, "reports/"+created.ID+".xlsx", exported["key"])

	resp, err = app.Test(httptest.NewRequest("GET", base, nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got map[string]any
	decode(t, resp, &got)
	assert.Equal(t, true, got["exportable"])

	resp, err = app.Test(httptest.NewRequest("GET", "/runs", nil), 2000)
	require.NoError(t, err)
	var runs []map[string]any
	decode(t, resp, &runs)
	assert.Len(t, runs, 1)
}

func TestHandler_BOM(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(multipartRequest(t, nil, map[string]string{"parts": partsCSV, "placement": placementCSV}), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	base := "/runs/" + created["id"].(string)

	resp, err = app.Test(httptest.NewRequest("GET", base+"/bom", nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var lines []map[string]any
	decode(t, resp, &lines)
	require.Len(t, lines, 2)
	assert.Equal(t, "R1, R2, R3", lines[0]["location"])

	resp, err = app.Test(httptest.NewRequest("GET", base+"/bom?layer=top&format=csv", nil), 2000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `RES-10K,Resistor,10k,,"R1, R3",2`)

	resp, err = app.Test(httptest.NewRequest("GET", base+"/bom?layer=inner", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"UnknownRun", httptest.NewRequest("GET", "/runs/nope", nil), fiber.StatusNotFound},
		{"DeleteUnknownRun", httptest.NewRequest("DELETE", "/runs/nope", nil), fiber.StatusNotFound},
		{"MissingPlacementFile", multipartRequest(t, nil, map[string]string{"parts": partsCSV}), fiber.StatusBadRequest},
		{"InvalidMappingJSON", multipartRequest(t, map[string]string{"mapping": "{"}, map[string]string{"parts": partsCSV, "placement": placementCSV}), fiber.StatusBadRequest},
		{"UnmappedColumn", multipartRequest(t,
			map[string]string{"mapping": `{"parts_designator":"Ref","placement_designator":"Designator"}`},
			map[string]string{"parts": partsCSV, "placement": placementCSV}), fiber.StatusBadRequest},
		{"UnknownProfile", multipartRequest(t, map[string]string{"profile": "ghost"}, map[string]string{"parts": partsCSV, "placement": placementCSV}), fiber.StatusNotFound},
		{"ObjectRequestValidation", jsonRequest("POST", "/reconcile", `{"parts_key":"a.csv"}`), fiber.StatusBadRequest},
		{"InvalidBody", jsonRequest("POST", "/reconcile", `{`), fiber.StatusBadRequest},
		{"ReportNotExported", httptest.NewRequest("GET", "/runs/nope/report", nil), fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req, 2000)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			decode(t, resp, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}
