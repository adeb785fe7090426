package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promptBody struct {
	Prompt  string `json:"prompt"`
	IsRoute bool   `json:"is_route"`
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"prompt":"parques","is_route":true}`},
		{name: "empty", body: ``, wantErr: "must not be empty"},
		{name: "syntax", body: `{"prompt":`, wantErr: "badly-formed"},
		{name: "wrong type", body: `{"prompt":1}`, wantErr: `field "prompt"`},
		{name: "unknown key", body: `{"prompt":"x","api_key":"y"}`, wantErr: `unknown key "api_key"`},
		{name: "two values", body: `{"prompt":"x"}{"prompt":"y"}`, wantErr: "single JSON value"},
		{name: "too large", body: `{"prompt":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, wantErr: "must not be larger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst promptBody
			err := DecodeJSONBody(w, r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "parques", dst.Prompt)
				assert.True(t, dst.IsRoute)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorResponse(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	ErrorResponse(w, r, http.StatusBadGateway, "upstream unavailable")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "upstream unavailable", resp.Error)
}

func TestWriteJSONResponse_NoContent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteJSONResponse(w, r, http.StatusNoContent, map[string]string{"ignored": "yes"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(nil, ""))
	assert.False(t, VerifyAudience(nil, "geomapper-web"))
	assert.False(t, VerifyAudience(jwt.ClaimStrings{"other"}, "geomapper-web"))
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"other", "geomapper-web"}, "geomapper-web"))
}
