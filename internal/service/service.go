// Package service exposes a finalized model over HTTP. The engine is
// immutable once built; custom word changes build a new one and swap it in.
package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"ngramcorrector/internal/corrector"
	"ngramcorrector/internal/model"
	"ngramcorrector/pkg/options"
)

// WordStore persists custom words.
type WordStore interface {
	Add(ctx context.Context, word string) (bool, error)
	Remove(ctx context.Context, word string) (bool, error)
	All(ctx context.Context) ([]string, error)
	Has(ctx context.Context, word string) (bool, error)
}

// Loader builds a finalized model that also contains extra.
type Loader func(ctx context.Context, extra []string) (*model.Model, error)

// FileLoader restores the model saved at path on every call.
func FileLoader(path string, opts ...model.Option) Loader {
	return func(_ context.Context, extra []string) (*model.Model, error) {
		o := append(opts[:len(opts):len(opts)], model.WithExtraWords(extra))
		return model.LoadFile(path, o...)
	}
}

// Engine is one immutable model with its corrector. Generation grows by
// one on every successful reload.
type Engine struct {
	Model      *model.Model
	Corrector  *corrector.Corrector
	Loaded     time.Time
	Generation uint64
}

type Config struct {
	Load             Loader
	Store            WordStore
	CorrectorOptions []options.Options
	CacheSize        int
	Logger           logrus.FieldLogger
	Registry         *prometheus.Registry
}

type Service struct {
	engine  atomic.Pointer[Engine]
	load    Loader
	store   WordStore
	copts   []options.Options
	cache   *lru.Cache[string, []corrector.Suggestion]
	metrics *metrics
	log     logrus.FieldLogger
	router  *mux.Router
	handler http.Handler
	reload  sync.Mutex
}

// New builds the first engine and the routes.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Load == nil {
		return nil, fmt.Errorf("service: no model loader")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	s := &Service{
		load:    cfg.Load,
		store:   cfg.Store,
		copts:   append([]options.Options{options.WithLogger(cfg.Logger)}, cfg.CorrectorOptions...),
		metrics: newMetrics(cfg.Registry),
		log:     cfg.Logger,
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, []corrector.Suggestion](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}
		s.cache = c
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.setupRoutes(cfg.Registry)
	return s, nil
}

// Engine returns the engine currently serving requests.
func (s *Service) Engine() *Engine {
	return s.engine.Load()
}

// Reload rebuilds the engine from the loader and the stored custom words.
func (s *Service) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	var extra []string
	if s.store != nil {
		words, err := s.store.All(ctx)
		if err != nil {
			s.metrics.reloads.WithLabelValues("error").Inc()
			return fmt.Errorf("loading custom words: %w", err)
		}
		extra = words
	}

	start := time.Now()
	m, err := s.load(ctx, extra)
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return fmt.Errorf("loading model: %w", err)
	}
	e := &Engine{
		Model:     m,
		Corrector: corrector.New(m.Lexicon(), m.LanguageModel(), s.copts...),
		Loaded:    time.Now(),
	}
	if prev := s.engine.Load(); prev != nil {
		e.Generation = prev.Generation + 1
	}
	s.engine.Store(e)
	if s.cache != nil {
		s.cache.Purge()
	}
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.metrics.words.Set(float64(m.Lexicon().Len()))
	s.log.WithFields(logrus.Fields{
		"custom_words": len(extra),
		"words":        m.Lexicon().Len(),
		"took":         time.Since(start),
	}).Info("model loaded")
	return nil
}

// Correct ranks corrections for the last element of words, using the
// cache when enabled. Cache entries are keyed by engine generation, so a
// result computed by a replaced engine is never served.
func (s *Service) Correct(words []string) []corrector.Suggestion {
	e := s.Engine()
	key := cacheKey(e.Generation, words)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			s.metrics.cache.WithLabelValues("hit").Inc()
			return v
		}
		s.metrics.cache.WithLabelValues("miss").Inc()
	}

	timer := prometheus.NewTimer(s.metrics.latency)
	res := e.Corrector.CorrectWordInContext(words)
	timer.ObserveDuration()

	if s.cache != nil {
		s.cache.Add(key, res)
	}
	return res
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func cacheKey(gen uint64, words []string) string {
	n := 9
	for _, w := range words {
		n += len(w) + 1
	}
	b := make([]byte, 0, n)
	b = strconv.AppendUint(b, gen, 10)
	b = append(b, 0)
	for _, w := range words {
		b = append(b, w...)
		b = append(b, 0)
	}
	return string(b)
}
