package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurepulse/internal/dataprocessing"
	"procurepulse/internal/infrastructure"
	"procurepulse/internal/shared/testutil"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validationErr(t *testing.T) error {
	t.Helper()
	type query struct {
		Year int `validate:"omitempty,min=1900"`
	}
	err := validator.New().Struct(query{Year: 12})
	require.Error(t, err)
	return err
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:       "missing columns",
			err:        &dataprocessing.SchemaError{Missing: []string{"Planta", "Pedido"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDatasetSchema,
			wantDetail: `the following required columns are missing: ["Planta", "Pedido"]`,
		},
		{
			name:       "unreadable dataset",
			err:        fmt.Errorf("reload: %w", &dataprocessing.LoadError{Path: "Base BI.csv", Err: os.ErrNotExist}),
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetLoad,
		},
		{
			name:       "dataset not loaded",
			err:        ErrDatasetNotLoaded,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDatasetNotLoaded,
			wantDetail: "No dataset is loaded",
		},
		{
			name:       "invalid parameter",
			err:        InvalidParameterError("year", fmt.Errorf("not a number")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantDetail: `invalid value for parameter "year"`,
		},
		{
			name:       "validator errors",
			err:        validationErr(t),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "export failure",
			err:        NewExportError("write workbook", os.ErrPermission),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeExport,
			wantDetail: "write workbook",
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error hides its cause",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantDetail: ErrInternalServer.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-1"))
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, ProblemContentType, rec.Header().Get("Content-Type"))

			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/dashboard", body["instance"])
			assert.Equal(t, "trace-1", body["trace_id"])
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, rec.Body.Len())
}

func TestErrorToProblem_Extensions(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil)

	t.Run("schema error lists missing columns", func(t *testing.T) {
		p := h.ErrorToProblem(&dataprocessing.SchemaError{Missing: []string{"Automação"}}, req)
		assert.Equal(t, []string{"Automação"}, p.Extensions["missing_columns"])
		assert.Equal(t, CodeDatasetSchema, p.Extensions["error_code"])
	})

	t.Run("load error carries the path", func(t *testing.T) {
		p := h.ErrorToProblem(&dataprocessing.LoadError{Path: "a.csv", Err: os.ErrNotExist}, req)
		assert.Equal(t, "a.csv", p.Extensions["path"])
	})

	t.Run("validator errors name the field", func(t *testing.T) {
		p := h.ErrorToProblem(validationErr(t), req)
		fields, ok := p.Extensions["errors"].([]ValidationError)
		require.True(t, ok)
		require.Len(t, fields, 1)
		assert.Equal(t, ValidationError{Field: "Year", Message: "must be at least 1900"}, fields[0])
	})
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	h := NewErrorHandler(slog.Default(), true)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("boom"))

	assert.Contains(t, decodeProblem(t, rec), "stack")
}

func TestErrorHandler_RouterFallbacks(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, CodeNotFound, body["error_code"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/dashboard", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method DELETE is not allowed for this endpoint", decodeProblem(t, rec)["detail"])
}
