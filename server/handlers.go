package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/types"
	"github.com/primitivehl/whitelist-checker/whitelist"
)

func (s *WhitelistCheckerServer) handleHealthRequest(w http.ResponseWriter, r *http.Request) {
	res := types.HealthResponse{
		Now:       Now(),
		StartTime: s.startTime,
		Version:   s.version,
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCheck runs a one-shot check of the address query parameter. Invalid
// addresses and load failures are reported in the body with status 200.
func (s *WhitelistCheckerServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("address") {
		writeError(w, http.StatusBadRequest, "missing address parameter")
		return
	}

	c := s.newChecker(r, "")
	res := c.Check(r.Context(), q.Get("address"))
	writeJSON(w, http.StatusOK, toCheckResponse(res))
}

func (s *WhitelistCheckerServer) handleListInfo(w http.ResponseWriter, r *http.Request) {
	addrs, err := s.loader.LoadEligibleAddresses(r.Context())
	if err != nil {
		s.logger.Warn("[handleListInfo] list unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, checker.MsgCheckFailed)
		return
	}
	set := whitelist.NewSet(addrs)
	writeJSON(w, http.StatusOK, types.ListInfoResponse{
		Sources:     s.sources,
		Addresses:   len(addrs),
		Unique:      set.Len(),
		Fingerprint: strconv.FormatUint(set.Fingerprint(), 16),
	})
}

func (s *WhitelistCheckerServer) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create(func(id uuid.UUID) *checker.Checker {
		return s.newChecker(r, id.String())
	})
	s.logger.Debug("[handleCreateSession] session created", "session", sess.Id)
	writeJSON(w, http.StatusCreated, types.SessionResponse{
		SessionId: sess.Id.String(),
		State:     toCheckResponse(sess.Checker.State()),
	})
}

func (s *WhitelistCheckerServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{
		SessionId: sess.Id.String(),
		State:     toCheckResponse(sess.Checker.State()),
	})
}

// handleSubmit starts a check in the session. A previous check still in
// flight is superseded.
func (s *WhitelistCheckerServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req types.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.Checker.Submit(req.Address)
	writeJSON(w, http.StatusAccepted, types.SessionResponse{
		SessionId: sess.Id.String(),
		State:     toCheckResponse(sess.Checker.State()),
	})
}

func (s *WhitelistCheckerServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Delete(chi.URLParam(r, "id"))
	if errors.Is(err, ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *WhitelistCheckerServer) newChecker(r *http.Request, sessionId string) *checker.Checker {
	return checker.New(checker.Config{
		Logger:               s.logger,
		Loader:               s.loader,
		MinimumCheckDuration: s.minCheckDuration,
		Recorder: &checkRecorder{
			db:        s.db,
			logger:    s.logger,
			sessionId: sessionId,
			ipHash:    ClientHash(r),
			origin:    r.Header.Get("Origin"),
		},
	})
}
