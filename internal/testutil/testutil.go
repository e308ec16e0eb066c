// Package testutil holds helpers shared by handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

// Token returns a one-hour bearer token for userID, or "" when secret is empty.
func Token(secret, userID string) string {
	token, _, _ := crypto.GenerateToken(secret, userID, time.Hour)
	return token
}

// ExpiredToken returns a correctly signed token that expired an hour ago.
func ExpiredToken(secret, userID string) string {
	c := crypto.Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a request whose body is body encoded as JSON.
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth is NewRequest with a bearer token.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// DecodeResponse reads a JSON envelope response. An empty body leaves Body nil.
func DecodeResponse(resp *http.Response) RecordResponse {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   resp.StatusCode,
		Header: resp.Header,
		Body:   bodyMap,
	}
}

// RecordHTTPResponse decodes the response held by w.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	return DecodeResponse(w.Result())
}
