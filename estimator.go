/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize          = 320
	socketReadLimit = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type estimateRequest struct {
	Sessions *uint64 `json:"sessions"`
}

type estimateError struct {
	Error string `json:"error"`
}

// decodeEstimateRequest requires exactly one known field, "sessions".
func decodeEstimateRequest(data []byte) (uint64, error) {
	var req estimateRequest

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidEntries, err)
	}
	if req.Sessions == nil {
		return 0, ErrMissingArgument
	}

	return *req.Sessions, nil
}

func estimateFromParams(ps httprouter.Params) (Estimate, error) {
	entries, err := parseEntries(ps.ByName("sessions"))
	if err != nil {
		return Estimate{}, err
	}

	return estimate(entries)
}

func serveEstimate(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		securityHeaders(cfg, w)

		est, err := estimateFromParams(ps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		written, err := w.Write([]byte(est.String()))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Estimate for %d sessions (%s) to %s in %s",
			est.Entries,
			formatSize(uint64(written)),
			r.RemoteAddr,
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveEstimateQR encodes the plain text estimate, not a link to it.
func serveEstimateQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		securityHeaders(cfg, w)

		est, err := estimateFromParams(ps)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		png, err := qrcode.Encode(strings.TrimSuffix(est.String(), "\n"), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")

		_, err = w.Write(png)
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveEstimateSocket(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: websocket upgrade from %s: %v", r.RemoteAddr, err)

			return
		}
		defer conn.Close()

		conn.SetReadLimit(socketReadLimit)

		logf(cfg, "SERVE: Websocket opened by %s", r.RemoteAddr)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errs <- err
				}

				return
			}

			var reply any

			if entries, err := decodeEstimateRequest(data); err != nil {
				reply = estimateError{Error: err.Error()}
			} else if est, err := estimate(entries); err != nil {
				reply = estimateError{Error: err.Error()}
			} else {
				reply = est
			}

			if err := conn.WriteJSON(reply); err != nil {
				errs <- err

				return
			}
		}
	}
}

func registerEstimator(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+path+"/:sessions", serveEstimate(cfg, errs))
	mux.GET(cfg.prefix+path+"/:sessions/qr", serveEstimateQR(cfg, errs))
	mux.GET(cfg.prefix+"/ws", serveEstimateSocket(cfg, errs))
}
