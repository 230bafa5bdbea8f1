package server

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/types"
	"github.com/primitivehl/whitelist-checker/whitelist"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	jsonResp, err := json.Marshal(v)
	if err != nil {
		log.Error("[writeJSON] marshal failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonResp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

// toCheckResponse maps a checker result to the shape the page renders.
func toCheckResponse(res checker.Result) types.CheckResponse {
	resp := types.CheckResponse{
		Address:         res.Address,
		ChecksumAddress: whitelist.ChecksumAddress(res.Address),
		Status:          res.Status.String(),
		IsWhitelisted:   res.IsWhitelisted,
		IsLoading:       res.IsLoading(),
	}
	if res.Error != "" {
		msg := res.Error
		resp.Error = &msg
	}
	return resp
}
