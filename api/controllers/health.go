package controllers

import (
	"net/http"
	"time"

	"github.com/craftcollective/craft-market/api/responses"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// Health reports liveness. Timestamp is unix milliseconds.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, healthResponse{Status: "ok", Timestamp: time.Now().UnixMilli()})
	}
}
