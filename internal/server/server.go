package server

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// Dispatcher turns a parsed request into a response
type Dispatcher interface {
	Dispatch(req *request.Request) *response.Response
}

// Server accepts connections and serves one request per connection, each on
// its own goroutine. Config is never mutated after New.
type Server struct {
	Config  Config
	Logger  Logger
	Metrics *Metrics

	dispatcher Dispatcher
	listener   net.Listener
	closed     atomic.Bool
}

func New(config Config, dispatcher Dispatcher) *Server {
	return &Server{
		Config:     config,
		Logger:     NewDefaultLogger(),
		Metrics:    NewMetrics(),
		dispatcher: dispatcher,
	}
}

// Listen binds the configured address
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.Config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Config.Addr, err)
	}
	s.listener = listener

	s.Logger.Info("listening",
		Field{"addr", listener.Addr().String()},
		Field{"directory", s.Config.Directory},
	)
	return nil
}

// Serve runs the accept loop until Close. Accept errors are logged and the
// loop keeps going.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Logger.Error("error accepting connection", Field{"error", err})
			continue
		}

		go s.serveConn(conn)
	}
}

// ListenAndServe binds and then blocks in the accept loop
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Addr returns the bound address, nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting. Connections already accepted run to completion.
func (s *Server) Close() error {
	if s.listener == nil || s.closed.Swap(true) {
		return nil
	}

	stats := s.Stats()
	s.Logger.Info("server closing",
		Field{"requests_total", stats.RequestsTotal},
		Field{"errors_4xx", stats.Errors4xx},
		Field{"errors_5xx", stats.Errors5xx},
		Field{"parse_errors", stats.ParseErrors},
		Field{"framing_errors", stats.FramingErrors},
		Field{"avg_latency", stats.AverageLatency.String()},
	)
	return s.listener.Close()
}

func (s *Server) Stats() MetricsSnapshot {
	return s.Metrics.Snapshot()
}
