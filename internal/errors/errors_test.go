package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Is(t *testing.T) {
	wrapped := fmt.Errorf("dashboard: %w", ErrDatasetNotLoaded)
	copied := New(http.StatusServiceUnavailable, CodeDatasetNotLoaded, "different text")

	assert.True(t, stderrors.Is(wrapped, ErrDatasetNotLoaded))
	assert.True(t, stderrors.Is(copied, ErrDatasetNotLoaded))
	assert.False(t, stderrors.Is(ErrNotFound, ErrDatasetNotLoaded))
}

func TestAppError(t *testing.T) {
	err := NewExportError("write csv", os.ErrPermission).WithContext("path", "out.csv")

	assert.Equal(t, "[EXPORT] write csv: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "out.csv", err.Context["path"])
	assert.Equal(t, "[CONFIG] bad port", NewConfigError("bad port", nil).Error())
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusUnprocessableEntity, TypeDatasetSchema, "Dataset Schema Invalid", "", "/x").
		WithExtension("missing_columns", []string{"Planta"}).
		WithExtension("status", "ignored")

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(422), body["status"])
	assert.Equal(t, []interface{}{"Planta"}, body["missing_columns"])
	assert.NotContains(t, body, "detail")
}

func TestWriteProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProblem(rec, NewProblemDetails(http.StatusTooManyRequests, TypeRateLimit, "Too Many Requests", "slow down", ""))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, ProblemContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"type":"/errors/rate-limit","title":"Too Many Requests","status":429,"detail":"slow down"}`, rec.Body.String())
}
