package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer() *Server {
	// Metrics are nil: promauto registers on the process-global
	// registry, which breaks under repeated test construction.
	h := NewHandlers(24, 0, nil)
	return NewServer("127.0.0.1:0", h, false)
}

func postEncode(t *testing.T, srv *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/encode", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleEncode(t *testing.T) {
	srv := newTestServer()

	payload := base64.StdEncoding.EncodeToString([]byte("The quick brown fox jumps over the lazy dog"))
	rec := postEncode(t, srv, map[string]interface{}{
		"rateMbps": 36,
		"payload":  payload,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RateMbps    int       `json:"rateMbps"`
		Length      int       `json:"length"`
		DataSymbols int       `json:"dataSymbols"`
		Samples     int       `json:"samples"`
		Modulation  string    `json:"modulation"`
		CodingRate  string    `json:"codingRate"`
		I           []float64 `json:"i"`
		Q           []float64 `json:"q"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.RateMbps != 36 {
		t.Errorf("rate = %d", resp.RateMbps)
	}
	if resp.Length != 43 {
		t.Errorf("length = %d, want 43", resp.Length)
	}
	if resp.Modulation != "16-QAM" || resp.CodingRate != "3/4" {
		t.Errorf("params = %s %s", resp.Modulation, resp.CodingRate)
	}
	if resp.Samples == 0 || len(resp.I) != resp.Samples || len(resp.Q) != resp.Samples {
		t.Errorf("sample arrays inconsistent: %d/%d/%d", resp.Samples, len(resp.I), len(resp.Q))
	}
	// 2 training fields of 161 plus (1 + dataSymbols) * 81.
	want := 2*161 + (1+resp.DataSymbols)*81
	if resp.Samples != want {
		t.Errorf("samples = %d, want %d", resp.Samples, want)
	}
}

func TestHandleEncode_DefaultRate(t *testing.T) {
	srv := newTestServer()
	rec := postEncode(t, srv, map[string]interface{}{
		"payload": base64.StdEncoding.EncodeToString([]byte("x")),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		RateMbps int `json:"rateMbps"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.RateMbps != 24 {
		t.Errorf("rate = %d, want default 24", resp.RateMbps)
	}
}

func TestHandleEncode_FrameMode(t *testing.T) {
	srv := newTestServer()
	rec := postEncode(t, srv, map[string]interface{}{
		"rateMbps": 6,
		"payload":  base64.StdEncoding.EncodeToString([]byte("framed")),
		"frame":    true,
		"seqNum":   3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Length int `json:"length"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	// 6 payload octets + 4 header + 4 FCS.
	if resp.Length != 14 {
		t.Errorf("length = %d, want 14", resp.Length)
	}
}

func TestHandleEncode_Errors(t *testing.T) {
	srv := newTestServer()

	cases := []struct {
		name string
		body interface{}
		code int
	}{
		{"unsupported rate", map[string]interface{}{
			"rateMbps": 13,
			"payload":  base64.StdEncoding.EncodeToString([]byte("x")),
		}, http.StatusBadRequest},
		{"bad base64", map[string]interface{}{
			"rateMbps": 6,
			"payload":  "!!not base64!!",
		}, http.StatusBadRequest},
		{"empty payload", map[string]interface{}{
			"rateMbps": 6,
			"payload":  "",
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := postEncode(t, srv, tc.body)
		if rec.Code != tc.code {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/encode", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status %d, want 405", rec.Code)
	}
}

func TestHandleRates(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var resp struct {
		Rates []struct {
			RateMbps          int `json:"rateMbps"`
			DataBitsPerSymbol int `json:"dataBitsPerSymbol"`
		} `json:"rates"`
		DefaultRate int `json:"defaultRate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(resp.Rates) != 8 {
		t.Errorf("got %d rates, want 8", len(resp.Rates))
	}
	if resp.Rates[0].RateMbps != 6 || resp.Rates[len(resp.Rates)-1].RateMbps != 54 {
		t.Error("rates not sorted ascending from 6 to 54")
	}
	if resp.DefaultRate != 24 {
		t.Errorf("default rate = %d", resp.DefaultRate)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "ok" {
		t.Errorf("status field = %v", resp["status"])
	}
}
