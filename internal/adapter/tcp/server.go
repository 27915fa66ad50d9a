package tcp

import (
	"errors"
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/coralbank/coralbank-backend/internal/usecase/command"
	"github.com/coralbank/coralbank-backend/internal/usecase/credential"
)

// Server accepts customer connections and runs one session goroutine per
// connection. All blocking reads happen here, outside the command
// processor's lock; a session that disconnects mid-dialogue leaves no
// partial ledger state because every command is a single atomic step.
type Server struct {
	addr      string
	creds     *credential.Store
	processor *command.Processor

	ln net.Listener
}

// NewServer creates a session server bound to the given address
func NewServer(addr string, creds *credential.Store, processor *command.Processor) *Server {
	return &Server{
		addr:      addr,
		creds:     creds,
		processor: processor,
	}
}

// ListenAndServe accepts connections until the listener is closed
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	logrus.WithField("addr", ln.Addr().String()).Info("bank server listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

// Close stops the listener. Sessions already in flight run until their
// customers disconnect.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	log := logrus.WithFields(logrus.Fields{
		"session": uuid.New().String(),
		"remote":  conn.RemoteAddr().String(),
	})
	log.Info("session opened")
	s.runSession(conn, log)
	log.Info("session closed")
}
