// Package server implements the reference AirPoint receiver: it accepts
// client connections, decodes binary input frames, hands them to an
// InputHandler and mirrors them as JSON over a WebSocket feed.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/friend95/Cerosoft.AirPoint.Client/protocol"
	"github.com/friend95/Cerosoft.AirPoint.Client/transport"
)

// HTTP server timeouts.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 120 * time.Second
)

// Config configures the receiver.
type Config struct {
	// PacketAddr is where the binary input stream is accepted, e.g. ":17865".
	PacketAddr string
	// HTTPAddr serves /health, /ws and the shutdown endpoint.
	HTTPAddr string
	// Advertise registers the packet port over mDNS when true.
	Advertise bool
	// Instance overrides the advertised instance name (default: hostname).
	Instance string
	// Handler consumes decoded packets; nil means LogHandler.
	Handler InputHandler
}

// Server is one running receiver instance.
type Server struct {
	cfg        Config
	handler    InputHandler
	broadcast  *broadcaster
	listener   net.Listener
	httpServer *http.Server
	hooks      *ShutdownHook
	quit       chan struct{}
}

// New creates a receiver from cfg without starting it.
func New(cfg Config) *Server {
	handler := cfg.Handler
	if handler == nil {
		handler = LogHandler{}
	}
	return &Server{
		cfg:       cfg,
		handler:   handler,
		broadcast: newBroadcaster(),
		hooks:     NewShutdownHook(),
		quit:      make(chan struct{}),
	}
}

// Start begins accepting packet and HTTP connections. It does not block;
// use Wait to block until a shutdown request arrives.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.PacketAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.PacketAddr, err)
	}
	s.listener = listener
	s.hooks.Register("packet listener", listener.Close)

	if s.cfg.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		stop, err := transport.Advertise(s.cfg.Instance, port)
		if err != nil {
			// discovery is best effort; direct connects still work
			log.WithField("err", err).Warn("mdns advertisement failed")
		} else {
			s.hooks.Register("mdns", func() error { stop(); return nil })
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.broadcast.handleWS)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	s.httpServer = &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	s.hooks.Register("http server", s.httpServer.Close)

	go s.acceptLoop()
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("err", err).Error("http server stopped")
		}
	}()

	log.WithFields(log.Fields{
		"packet": listener.Addr().String(),
		"http":   s.cfg.HTTPAddr,
	}).Info("receiver started")
	return nil
}

// Wait blocks until Stop is called (directly or via /api/shutdown).
func (s *Server) Wait() {
	<-s.quit
}

// Stop tears the receiver down. Safe to call more than once.
func (s *Server) Stop() {
	select {
	case <-s.quit:
		return
	default:
		close(s.quit)
	}
	if err := s.hooks.Shutdown(); err != nil {
		log.WithField("err", err).Warn("shutdown incomplete")
	}
}

// PacketAddr returns the bound packet listener address.
func (s *Server) PacketAddr() string {
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
			default:
				log.WithField("err", err).Warn("accept failed")
			}
			return
		}
		go s.serveConn(conn)
	}
}

// serveConn decodes frames from one client until the stream breaks.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	log.WithField("client", remote).Info("client connected")

	reader := bufio.NewReader(conn)
	for {
		p, err := protocol.Decode(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WithFields(log.Fields{"client": remote, "err": err}).Warn("stream ended")
			} else {
				log.WithField("client", remote).Info("client disconnected")
			}
			return
		}

		if err := s.handler.HandlePacket(p); err != nil {
			log.WithFields(log.Fields{"op": p.Op, "err": err}).Warn("handler failed")
		}
		s.broadcast.Broadcast(eventFromPacket(p))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","subscribers":%d}`, s.broadcast.count())
}

func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	log.Info("shutdown requested")

	// reply before the http server is closed
	go s.Stop()
}

// StartServer runs a receiver until it is told to shut down.
func StartServer(cfg Config) error {
	srv := New(cfg)
	if err := srv.Start(); err != nil {
		return err
	}
	srv.Wait()
	return nil
}
