package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/picogrid/cosim-input/pkg/metrics"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/regions"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/store"
)

type sessionResponse struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

type recordsRequest struct {
	Count   *int                     `json:"count"`
	Records []map[string]interface{} `json:"records"`
}

type recordsResponse struct {
	Kind    string      `json:"kind"`
	Count   int         `json:"count"`
	Records interface{} `json:"records"`
}

type configsResponse struct {
	Configs []string `json:"configs"`
	Current string   `json:"current"`
}

type locateRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type locateResponse struct {
	Region string         `json:"region"`
	Target session.Target `json:"target"`
}

type simulateRequest struct {
	Simulation string `json:"simulation"`
}

type simulateResponse struct {
	Simulation string `json:"simulation"`
	Output     string `json:"output"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleOpenSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Open()
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID().String(), Created: sess.Created()})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Close(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Assemble())
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Assemble().System)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := decodeJSON(r, &fields); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	err := session.ApplySettings(sess, fields)
	s.countCommit("settings", err)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Assemble().System)
}

func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	resp, err := recordsView(sess, chi.URLParam(r, "kind"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req recordsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	kind := chi.URLParam(r, "kind")
	var err error
	switch kind {
	case store.TurbinesName:
		err = session.ApplyRecords(sess, store.Turbines, req.Count, req.Records)
	case store.SolarPanelsName:
		err = session.ApplyRecords(sess, store.SolarPanels, req.Count, req.Records)
	case store.EVCarsName:
		err = session.ApplyRecords(sess, store.EVCars, req.Count, req.Records)
	default:
		writeDomainError(w, unknownKind(kind))
		return
	}
	s.countCommit(kind, err)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp, err := recordsView(sess, kind)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, configsResponse{
		Configs: sess.Configs().List(),
		Current: sess.Configs().Current(),
	})
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	name, err := sess.Save()
	s.countConfigOp("save", err)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleLoadConfig(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	name, ok := configName(w, r)
	if !ok {
		return
	}

	err := sess.Load(name)
	s.countConfigOp("load", err)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Assemble())
}

func (s *Server) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	name, ok := configName(w, r)
	if !ok {
		return
	}

	err := sess.Delete(name)
	s.countConfigOp("delete", err)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// configName returns the decoded {name} parameter. chi matches on the escaped path when
// the request carries one, so a name such as "2024/summer" arrives as "2024%2Fsummer".
func configName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		writeBadRequest(w, "invalid configuration name")
		return "", false
	}
	return decoded, true
}

// handleLocate resolves a diagram click. A point outside every region yields an empty
// region and target.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.session(w, r); !ok {
		return
	}

	var req locateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	target, region, _ := session.Locate(s.regions, regions.Point{X: req.X, Y: req.Y})
	writeJSON(w, http.StatusOK, locateResponse{Region: region, Target: target})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req simulateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid JSON body")
			return
		}
	}
	name := req.Simulation
	if name == "" {
		name = s.defaultSim
	}

	sim, err := s.simulations.Get(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer sim.Stop() //nolint:errcheck

	var out bytes.Buffer
	err = sess.Simulate(r.Context(), sim, &out)
	if s.metrics != nil {
		s.metrics.Simulations.WithLabelValues(name, metrics.Result(err)).Inc()
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{Simulation: name, Output: out.String()})
}

// session resolves the {id} URL parameter, writing the error response itself when it
// cannot.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return sess, true
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid session id")
		return uuid.UUID{}, false
	}
	return id, true
}

func recordsView(sess *session.Session, kind string) (recordsResponse, error) {
	cfg := sess.Assemble()
	switch kind {
	case store.TurbinesName:
		return recordsResponse{Kind: kind, Count: len(cfg.Turbines), Records: cfg.Turbines}, nil
	case store.SolarPanelsName:
		return recordsResponse{Kind: kind, Count: len(cfg.SolarPanels), Records: cfg.SolarPanels}, nil
	case store.EVCarsName:
		return recordsResponse{Kind: kind, Count: len(cfg.EVCars), Records: cfg.EVCars}, nil
	default:
		return recordsResponse{}, unknownKind(kind)
	}
}

func unknownKind(kind string) error {
	return fmt.Errorf("record list %q: %w", kind, models.ErrNotFound)
}

func (s *Server) countCommit(kind string, err error) {
	if s.metrics != nil {
		s.metrics.EditorCommits.WithLabelValues(kind, metrics.Result(err)).Inc()
	}
}

func (s *Server) countConfigOp(op string, err error) {
	if s.metrics != nil {
		s.metrics.ConfigOperations.WithLabelValues(op, metrics.Result(err)).Inc()
	}
}
