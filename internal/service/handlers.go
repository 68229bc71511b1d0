package service

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"ngramcorrector/internal/corrector"
	"ngramcorrector/internal/customdict"
	"ngramcorrector/internal/tokenizer"
)

func (s *Service) setupRoutes(reg *prometheus.Registry) {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/correct", s.handleCorrect).Methods(http.MethodPost)
	api.HandleFunc("/correct-text", s.handleCorrectText).Methods(http.MethodPost)
	api.HandleFunc("/custom-word", s.handleAddWord).Methods(http.MethodPost)
	api.HandleFunc("/custom-word/{word}", s.handleHasWord).Methods(http.MethodGet)
	api.HandleFunc("/custom-word/{word}", s.handleRemoveWord).Methods(http.MethodDelete)
	api.HandleFunc("/custom-words", s.handleListWords).Methods(http.MethodGet)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Unknown paths and method mismatches both answer 404.
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.handler = s.requestLogging(s.router)
}

type correctRequest struct {
	Context []string `json:"context"`
}

type correctResponse struct {
	Candidates []corrector.Suggestion `json:"candidates"`
}

type textRequest struct {
	Text string `json:"text"`
}

type wordRequest struct {
	Word string `json:"word"`
}

func (s *Service) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req correctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Context) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	res := s.Correct(req.Context)
	out := make([]corrector.Suggestion, len(res))
	for i, c := range res {
		// JSON has no infinities.
		if math.IsInf(c.Score, 1) {
			c.Score = math.MaxFloat64
		}
		out[i] = c
	}
	writeJSON(w, http.StatusOK, correctResponse{Candidates: out})
}

func (s *Service) handleCorrectText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	writeJSON(w, http.StatusOK, s.Engine().Corrector.CorrectText(req.Text))
}

func (s *Service) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "custom dictionary disabled")
		return
	}
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	word := customdict.Normalize(req.Word)
	if !tokenizer.IsWord(word) {
		writeError(w, http.StatusBadRequest, "word must consist of letters")
		return
	}
	added, err := s.store.Add(r.Context(), word)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if added {
		if err := s.Reload(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok", "word": word})
}

func (s *Service) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "custom dictionary disabled")
		return
	}
	word := customdict.Normalize(mux.Vars(r)["word"])
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	removed, err := s.store.Remove(r.Context(), word)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleHasWord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "custom dictionary disabled")
		return
	}
	word := customdict.Normalize(mux.Vars(r)["word"])
	ok, err := s.store.Has(r.Context(), word)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"word": word})
}

func (s *Service) handleListWords(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, map[string][]string{"words": {}})
		return
	}
	words, err := s.store.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"words": words})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	e := s.Engine()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"order":  e.Model.Order(),
		"words":  e.Model.Lexicon().Len(),
		"tokens": e.Model.LanguageModel().Count(nil),
		"loaded": e.Loaded.UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Service) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		var match mux.RouteMatch
		if s.router.Match(r, &match) && match.MatchErr == nil && match.Route != nil {
			if tpl, err := match.Route.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"route":  route,
			"code":   rec.code,
			"took":   time.Since(start),
		}).Debug("request")
	})
}
