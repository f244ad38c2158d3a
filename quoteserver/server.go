// Package quoteserver implements the thin HTTP wrapper around the quote
// catalog: Bearer-token auth and a single GET endpoint.
package quoteserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/EfeSenerr/demo-ghcp-cli/logging"
	"github.com/EfeSenerr/demo-ghcp-cli/quote"
)

// DefaultQuotes is the built-in catalog served when no custom quotes are
// provided.
var DefaultQuotes = []quote.Quote{
	{Text: "Simplicity is the soul of efficiency.", Author: "Austin Freeman"},
	{Text: "It always seems impossible until it is done.", Author: "Nelson Mandela"},
	{Text: "The best way to predict the future is to invent it.", Author: "Alan Kay"},
	{Text: "Make it work, make it right, make it fast.", Author: "Kent Beck"},
}

// Options configure the server handler.
type Options struct {
	Quotes []quote.Quote
	Logger logging.Logger
}

// Server serves quotes over HTTP. Quotes rotate round-robin so repeated
// calls within a demo do not return the same entry.
type Server struct {
	token  string
	quotes []quote.Quote
	next   atomic.Uint64
	logger logging.Logger
}

// New constructs a Server requiring the given Bearer token. An empty token
// disables auth, which is only sensible in tests.
func New(token string, optFns ...func(o *Options)) *Server {
	opts := Options{
		Quotes: DefaultQuotes,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Server{token: token, quotes: opts.Quotes, logger: opts.Logger}
}

// Handler returns the HTTP handler: GET /quote behind Bearer auth.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quote", s.handleQuote)
	return s.requireBearer(mux)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if len(s.quotes) == 0 {
		http.Error(w, "no quotes configured", http.StatusServiceUnavailable)
		return
	}

	q := s.quotes[int(s.next.Add(1)-1)%len(s.quotes)]

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(q); err != nil {
		s.logger.Error("quoteserver.encode_failed", "error", err.Error())
	}
}

// requireBearer rejects requests whose Authorization header does not carry
// the configured token.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token != s.token {
				s.logger.Warn("quoteserver.unauthorized", "remote", r.RemoteAddr)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
