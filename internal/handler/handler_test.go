package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Handler{log: log, validate: newValidator()}
}

func TestCheckReportsJSONFieldNames(t *testing.T) {
	h := newTestHandler()
	amount := 10.0
	in := models.ExpenseInput{Category: strings.Repeat("x", 101), Amount: &amount}

	errs := h.check(&in, "[2].")
	got := map[string]string{}
	for _, fe := range errs {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"[2].category":    "must be at most 100 characters",
		"[2].description": "is required",
		"[2].date":        "is required",
	}, got)
}

func TestCheckPatchAllowsOmittedFields(t *testing.T) {
	h := newTestHandler()
	assert.Empty(t, h.check(&models.IncomePatch{}, ""))

	bad := "hourly"
	errs := h.check(&models.IncomePatch{Frequency: &bad}, "")
	require.Len(t, errs, 1)
	assert.Equal(t, "frequency", errs[0].Field)
	assert.Equal(t, "oneof", errs[0].Tag)
	assert.Equal(t, "must be one of: monthly bi-weekly weekly annually one-time", errs[0].Message)
}

func TestDecodeAndValidate(t *testing.T) {
	h := newTestHandler()

	post := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}

	var req models.LoginRequest
	err := h.decodeAndValidate(httptest.NewRecorder(), post(`{"username":"a"}`), &req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Errors[0].Field)

	err = h.decodeAndValidate(httptest.NewRecorder(), post(`[`), &req)
	assert.ErrorIs(t, err, errBadBody)
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	var req models.LoginRequest
	body := `{"username":"a","password":"b"} {"username":"c"}`
	err := decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req)
	assert.ErrorIs(t, err, errBadBody)

	body = `{"username":"a","password":"b"}` + "\n"
	require.NoError(t, decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req))
	assert.Equal(t, "a", req.Username)
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	var items []models.ExpenseInput
	body := `[` + strings.Repeat(`{"category":"x"},`, maxBodyBytes/16) + `{}]`
	err := decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &items)
	assert.ErrorIs(t, err, errBadBody)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err  error
		code int
		body string
	}{
		{repository.ErrNotFound, http.StatusNotFound, `{"error":"Not found"}`},
		{fmt.Errorf("sync goal: %w", repository.ErrNotFound), http.StatusNotFound, `{"error":"Not found"}`},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{service.ErrTokenExpired, http.StatusUnauthorized, `{"error":"Token expired"}`},
		{fmt.Errorf("%w: bad sig", service.ErrInvalidToken), http.StatusForbidden, `{"error":"Invalid token"}`},
		{service.ErrUserExists, http.StatusBadRequest, `{"error":"Username or email already exists"}`},
		{service.ErrInvalidState, http.StatusBadRequest, `{"error":"Invalid or expired sign-in state"}`},
		{&ValidationError{Errors: []FieldError{{Field: "amount", Tag: "gte", Message: "m"}}}, http.StatusBadRequest,
			`{"errors":[{"field":"amount","tag":"gte","message":"m"}]}`},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			h.writeError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), tt.err)
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestUserIDRequiresAuthenticatedContext(t *testing.T) {
	h := newTestHandler()
	w := httptest.NewRecorder()
	_, ok := h.userID(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
