package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser map[string]error

func (f fakeParser) ParseToken(token string) (*service.Claims, error) {
	if err, ok := f[token]; ok {
		return nil, err
	}
	return &service.Claims{UserID: "u-" + token, Username: "name-" + token}, nil
}

func newLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	log := logrus.New()
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, buf
}

func whoami(w http.ResponseWriter, r *http.Request) {
	id, _ := UserID(r.Context())
	fmt.Fprintf(w, "%s/%s", id, Username(r.Context()))
}

func TestAuth(t *testing.T) {
	log, _ := newLogger()
	parser := fakeParser{
		"expired": service.ErrTokenExpired,
		"forged":  fmt.Errorf("%w: signature is invalid", service.ErrInvalidToken),
	}
	h := Auth(parser, log)(http.HandlerFunc(whoami))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "invalid authorization header"},
		{"expired", "Bearer expired", http.StatusUnauthorized, "token expired"},
		{"bad signature", "Bearer forged", http.StatusForbidden, "invalid token"},
		{"valid", "Bearer ok", http.StatusOK, "u-ok/name-ok"},
		{"lowercase scheme", "bearer ok", http.StatusOK, "u-ok/name-ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/incomes", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestLoggingRecordsStatusAndUser(t *testing.T) {
	log, buf := newLogger()
	h := Logging(log)(Auth(fakeParser{}, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/goals", http.NoBody)
	req.Header.Set("Authorization", "Bearer abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/goals", entry["path"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, "u-abc", entry["user_id"])
}

func TestRecover(t *testing.T) {
	log, buf := newLogger()
	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "boom")
}
