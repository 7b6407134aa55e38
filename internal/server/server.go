package server

import (
	"fmt"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"machikoro/internal/archive"
	"machikoro/internal/engine"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   fs.FS
	log      *zap.Logger
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	archive archive.Store
	log     *zap.Logger
	engine  []engine.Option
}

// WithArchive stores table histories in s instead of memory.
func WithArchive(s archive.Store) Option {
	return func(o *serverOptions) { o.archive = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *serverOptions) { o.log = l }
}

// WithEngineOptions passes options to every session the server starts.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *serverOptions) { o.engine = append(o.engine, opts...) }
}

// New builds a server. static is the root of the web assets.
func New(port int, static fs.FS, opts ...Option) *Server {
	o := serverOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		handlers: NewHandlers(o.archive, o.log, o.engine...),
		port:     port,
		static:   static,
		log:      o.log,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.static)))
	}

	mux.HandleFunc("/api/create", s.handlers.HandleCreateTable)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/api/history", s.handlers.HandleHistory)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("machikoro server starting", zap.String("addr", "http://localhost"+addr))
	s.log.Info("open /api/create to set up a table", zap.String("url", "http://localhost"+addr+"/api/create"))
	return http.ListenAndServe(addr, s.Handler())
}
