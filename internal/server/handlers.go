package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/jeongseonghan/ofdm-phy/internal/phy"
	"github.com/jeongseonghan/ofdm-phy/internal/protocol"
)

// Handlers holds the HTTP API handlers.
type Handlers struct {
	defaultRate int
	defaultSeed byte
	wsHub       *WSHub
	metrics     *Metrics // nil disables metric updates
}

// NewHandlers creates new API handlers. A nil metrics disables
// instrumentation.
func NewHandlers(defaultRate int, defaultSeed byte, metrics *Metrics) *Handlers {
	return &Handlers{
		defaultRate: defaultRate,
		defaultSeed: defaultSeed,
		wsHub:       NewWSHub(),
		metrics:     metrics,
	}
}

// HandleWebSocket handles WebSocket upgrade requests.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.wsHub.AddClient(conn)
	if h.metrics != nil {
		h.metrics.WSConnected()
	}

	// Read messages (for potential commands from client)
	go func() {
		defer func() {
			h.wsHub.RemoveClient(conn)
			if h.metrics != nil {
				h.metrics.WSDisconnected()
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

type encodeRequest struct {
	RateMbps int    `json:"rateMbps"`
	Payload  string `json:"payload"` // base64
	Seed     int    `json:"seed,omitempty"`
	Frame    bool   `json:"frame,omitempty"` // wrap in an MPDU with FCS
	SeqNum   int    `json:"seqNum,omitempty"`
}

type encodeResponse struct {
	RateMbps    int       `json:"rateMbps"`
	Length      int       `json:"length"`
	DataSymbols int       `json:"dataSymbols"`
	Samples     int       `json:"samples"`
	Modulation  string    `json:"modulation"`
	CodingRate  string    `json:"codingRate"`
	I           []float64 `json:"i"`
	Q           []float64 `json:"q"`
}

// HandleEncode encodes a payload into a baseband waveform.
func (h *Handlers) HandleEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.encodeFailed(w, fmt.Sprintf("Parse request: %v", err), http.StatusBadRequest)
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		h.encodeFailed(w, fmt.Sprintf("Decode payload: %v", err), http.StatusBadRequest)
		return
	}

	rate := req.RateMbps
	if rate == 0 {
		rate = h.defaultRate
	}

	if req.Frame {
		f := protocol.NewDataFrame(byte(req.SeqNum), payload)
		mpdu, err := f.Encode()
		if err != nil {
			h.encodeFailed(w, fmt.Sprintf("Frame payload: %v", err), http.StatusBadRequest)
			return
		}
		payload = mpdu
	}

	tv, err := phy.NewTxVector(rate, len(payload))
	if err != nil {
		h.encodeFailed(w, fmt.Sprintf("Invalid transmit vector: %v", err), badRequestStatus(err))
		return
	}
	if req.Seed != 0 {
		tv.ScramblerSeed = byte(req.Seed)
	} else {
		tv.ScramblerSeed = h.defaultSeed
	}

	waveform, err := phy.Encode(tv, payload)
	if err != nil {
		h.encodeFailed(w, fmt.Sprintf("Encode: %v", err), http.StatusInternalServerError)
		return
	}

	params, _ := tv.Params()
	samples := waveform.Samples()

	resp := encodeResponse{
		RateMbps:    rate,
		Length:      len(payload),
		DataSymbols: waveform.NumDataSymbols(),
		Samples:     len(samples),
		Modulation:  params.Modulation.String(),
		CodingRate:  params.CodingRate.String(),
		I:           make([]float64, len(samples)),
		Q:           make([]float64, len(samples)),
	}
	for i, s := range samples {
		resp.I[i] = real(s)
		resp.Q[i] = imag(s)
	}

	if h.metrics != nil {
		h.metrics.FrameEncoded(fmt.Sprintf("%d", rate), len(samples))
	}
	h.wsHub.BroadcastEncode(EncodePayload{
		RateMbps:    rate,
		Length:      len(payload),
		DataSymbols: waveform.NumDataSymbols(),
		Samples:     len(samples),
		Modulation:  params.Modulation.String(),
		CodingRate:  params.CodingRate.String(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) encodeFailed(w http.ResponseWriter, msg string, status int) {
	if h.metrics != nil {
		h.metrics.EncodeError()
	}
	http.Error(w, msg, status)
}

func badRequestStatus(err error) int {
	if errors.Is(err, phy.ErrUnsupportedRate) || errors.Is(err, phy.ErrInvalidLength) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type rateInfo struct {
	RateMbps           int    `json:"rateMbps"`
	Modulation         string `json:"modulation"`
	CodingRate         string `json:"codingRate"`
	DataBitsPerSymbol  int    `json:"dataBitsPerSymbol"`
	CodedBitsPerSymbol int    `json:"codedBitsPerSymbol"`
}

// HandleRates lists the supported data rates and their parameters.
func (h *Handlers) HandleRates(w http.ResponseWriter, r *http.Request) {
	rates := phy.SupportedRates()
	sort.Ints(rates)

	infos := make([]rateInfo, 0, len(rates))
	for _, rate := range rates {
		p, err := phy.LookupRate(rate)
		if err != nil {
			continue
		}
		infos = append(infos, rateInfo{
			RateMbps:           rate,
			Modulation:         p.Modulation.String(),
			CodingRate:         p.CodingRate.String(),
			DataBitsPerSymbol:  p.DataBitsPerSymbol,
			CodedBitsPerSymbol: p.CodedBitsPerSymbol,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rates":       infos,
		"defaultRate": h.defaultRate,
	})
}

// HandleStatus reports server liveness and client counts.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"wsClients": h.wsHub.NumClients(),
	})
}
