package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/dictionary"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
)

type ctxSessionKey struct{}

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type healthRes struct {
	OK        bool `json:"ok"`
	Sessions  int  `json:"sessions"`
	Words     int  `json:"words"`
	Blocklist int  `json:"blocklist"`
}

// seedReq is the body of POST /sessions and POST /sessions/{id}/reset. An
// empty seed starts from the current time.
type seedReq struct {
	Seed string `json:"seed"`
}

// selectReq names a tile by index or by label such as "b2". Index wins when
// both are present.
type selectReq struct {
	Index *int   `json:"index"`
	Tile  string `json:"tile"`
}

type selectRes struct {
	Outcome  string       `json:"outcome"`
	Accepted bool         `json:"accepted"`
	Session  session.View `json:"session"`
}

type backRes struct {
	Removed bool         `json:"removed"`
	Session session.View `json:"session"`
}

type submitRes struct {
	Result  session.SubmitResult `json:"result"`
	Session session.View         `json:"session"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorRes{Error: code, Detail: detail})
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v
// unchanged.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// loadSession resolves {id} and stores the session in the request context.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, ok := s.sessions.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "session_not_found", id)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxSessionKey{}).(*session.Session)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthRes{
		OK:        true,
		Sessions:  s.sessions.Count(),
		Words:     s.store.Size(dictionary.Words),
		Blocklist: s.store.Size(dictionary.Blocklist),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req seedReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	sess, err := s.sessions.Create(req.Seed)
	if err != nil {
		s.logger.Error("creating session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create_failed", "")
		return
	}
	s.logger.Info("session created",
		zap.String("session", sess.ID()),
		zap.String("seed", sess.SeedInput()),
	)
	w.Header().Set("Location", "/sessions/"+sess.ID())
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Remove(sess.ID()); err != nil {
		writeError(w, http.StatusNotFound, "session_not_found", sess.ID())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelect answers 200 when the path changed and 422 when the tile was
// rejected; both carry the outcome and the session.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var req selectReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	var i int
	switch {
	case req.Index != nil:
		i = *req.Index
	case req.Tile != "":
		idx, err := command.ParseTile(req.Tile, sess.Grid().Side)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_tile", err.Error())
			return
		}
		i = idx
	default:
		writeError(w, http.StatusBadRequest, "missing_tile", `provide "index" or "tile"`)
		return
	}

	outcome := sess.Select(i)
	status := http.StatusOK
	if !outcome.Accepted() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, selectRes{
		Outcome:  outcome.String(),
		Accepted: outcome.Accepted(),
		Session:  sess.Snapshot(),
	})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	removed := sess.Deselect()
	writeJSON(w, http.StatusOK, backRes{Removed: removed, Session: sess.Snapshot()})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Clear()
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	res := sess.Submit()
	s.logger.Debug("word submitted",
		zap.String("session", sess.ID()),
		zap.String("word", res.Word),
		zap.Bool("valid", res.Valid),
		zap.String("reason", res.Reason),
	)
	writeJSON(w, http.StatusOK, submitRes{Result: res, Session: sess.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var req seedReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if err := sess.Reset(req.Seed); err != nil {
		s.logger.Error("resetting session", zap.String("session", sess.ID()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reset_failed", fmt.Sprintf("seed %q", req.Seed))
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}
