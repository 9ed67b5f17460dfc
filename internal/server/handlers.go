package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"votd-tui/internal/api"
	"votd-tui/internal/bible"
)

const writeWait = 10 * time.Second

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/api/verse-of-the-day", s.handleVerseOfDay).Methods("GET")
	r.HandleFunc("/api/verse", s.handleVerse).Methods("GET")
	r.HandleFunc("/votd_ws", s.handleVerseOfDayWS).Methods("GET")
	r.HandleFunc("/check_update", s.handleCheckUpdateWS).Methods("GET")
	return r
}

type errorPayload struct {
	Error string `json:"error"`
}

type versePayload struct {
	Citation string `json:"citation"`
	Passage  string `json:"passage"`
	Version  string `json:"version"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleVerseOfDay(w http.ResponseWriter, r *http.Request) {
	v, err := s.VerseOfDay(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorPayload{Error: "Failed to fetch data"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ref")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "missing ref query parameter"})
		return
	}
	ref, err := bible.ParseRef(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}

	text, ok := s.table.Find(ref)
	if !ok {
		writeJSON(w, http.StatusNotFound, versePayload{Citation: ref.String(), Passage: bible.NotFound})
		return
	}
	writeJSON(w, http.StatusOK, versePayload{Citation: ref.String(), Passage: text, Version: s.table.Version})
}

func (s *Server) handleVerseOfDayWS(w http.ResponseWriter, r *http.Request) {
	conn, log, err := s.upgrade(w, r)
	if err != nil {
		return
	}
	defer s.closeSocket(conn, log)

	v, err := s.VerseOfDay(r.Context())
	if err != nil {
		s.send(conn, log, errorPayload{Error: "Failed to fetch data"})
		return
	}
	s.send(conn, log, v)
}

func (s *Server) handleCheckUpdateWS(w http.ResponseWriter, r *http.Request) {
	conn, log, err := s.upgrade(w, r)
	if err != nil {
		return
	}
	defer s.closeSocket(conn, log)

	if s.updater == nil {
		s.send(conn, log, errorPayload{Error: "Update check disabled"})
		return
	}

	log = log.With("current", s.updater.CurrentVersion())
	res, err := s.updater.Check(r.Context())
	if err != nil {
		log.Error("update check failed", "err", err)
		s.send(conn, log, errorPayload{Error: "Failed to check for updates"})
		return
	}

	status := api.StatusUpToDate
	if res.Available {
		status = api.StatusUpdateAvailable
	}
	log.Debug("update check done", "latest", res.Latest, "available", res.Available)
	s.send(conn, log, api.UpdateInfo{
		Status:        status,
		LocalVersion:  res.Current,
		GithubVersion: res.Latest,
	})
}

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, *slog.Logger, error) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "path", r.URL.Path, "err", err)
		return nil, nil, err
	}
	log := s.log.With("conn", uuid.NewString(), "path", r.URL.Path)
	log.Debug("websocket connected")
	return conn, log, nil
}

func (s *Server) send(conn *websocket.Conn, log *slog.Logger, v any) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(v); err != nil {
		log.Error("websocket write failed", "err", err)
	}
}

func (s *Server) closeSocket(conn *websocket.Conn, log *slog.Logger) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	conn.Close()
	log.Debug("websocket closed")
}
