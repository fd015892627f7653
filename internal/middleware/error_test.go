package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errorStatuses = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusConflict,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (ErrorResponse, bool) {
	t.Helper()
	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	return response, err == nil
}

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every error carries status text, message and RFC3339 timestamp", prop.ForAll(
		func(index int, message string) bool {
			status := errorStatuses[index]
			w := httptest.NewRecorder()
			RespondWithError(w, status, message)

			response, ok := decodeError(t, w)
			if !ok || w.Code != status || w.Header().Get("Content-Type") != "application/json" {
				return false
			}
			if _, err := time.Parse(time.RFC3339, response.Error.Timestamp); err != nil {
				return false
			}
			return response.Error.Code == http.StatusText(status) &&
				response.Error.Message == message &&
				response.Error.Details == nil
		},
		gen.IntRange(0, len(errorStatuses)-1),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.Property("details are echoed back", prop.ForAll(
		func(key string, value string) bool {
			w := httptest.NewRecorder()
			RespondWithErrorDetails(w, http.StatusBadRequest, "bad filter", map[string]interface{}{key: value})

			response, ok := decodeError(t, w)
			return ok && response.Error.Details[key] == value
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRespondWithValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithValidationErrors(w, []ValidationError{{Field: "Price", Message: "Value is too short"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	response, ok := decodeError(t, w)
	require.True(t, ok)
	assert.Equal(t, "validation failed", response.Error.Message)

	list, ok := response.Error.Details["validation_errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Price", list[0].(map[string]interface{})["field"])
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusCreated, map[string]string{"name": "Mini Clay Vase"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Mini Clay Vase"}`, w.Body.String())
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil seller profile")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	response, ok := decodeError(t, w)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", response.Error.Message)
}
