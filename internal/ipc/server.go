package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"cornerman/internal/daemon"
	"cornerman/internal/logging"
	"cornerman/internal/services"
	"cornerman/internal/sportarr"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Cornerman", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return logging.NewComponentLogger(s.logger, "ipc")
}

// operation tags each RPC call with a fresh correlation id so log lines
// from one call can be tied together.
func (s *service) operation() (context.Context, *slog.Logger) {
	ctx := services.WithRequestID(s.ctx, uuid.NewString())
	return ctx, logging.WithContext(ctx, s.log())
}

func (s *service) Open(req OpenRequest, resp *OpenResponse) error {
	ctx, log := s.operation()
	log.Debug("session open requested",
		logging.Int64(logging.FieldEventID, req.EventID),
		logging.String(logging.FieldPart, req.Part))
	snap, err := s.daemon.OpenSession(ctx, req.EventID, req.Part)
	if err != nil {
		return err
	}
	resp.Session = snap
	log.Info("session opened via IPC",
		logging.String(logging.FieldSessionID, snap.SessionID))
	return nil
}

func (s *service) Search(_ SearchRequest, resp *SearchResponse) error {
	ctx, log := s.operation()
	log.Debug("session search requested")
	snap, err := s.daemon.SearchSession(ctx)
	if err != nil {
		return err
	}
	resp.Session = snap
	return nil
}

func (s *service) Grab(req GrabRequest, resp *GrabResponse) error {
	ctx, log := s.operation()
	log.Debug("grab requested", logging.Int("index", req.Index))
	outcome, err := s.daemon.GrabRelease(ctx, req.Index)
	if err != nil {
		return err
	}
	resp.Outcome = outcome
	return nil
}

func (s *service) Confirm(_ ConfirmRequest, resp *ConfirmResponse) error {
	ctx, log := s.operation()
	log.Debug("blocklist override confirm requested")
	outcome, err := s.daemon.ConfirmGrab(ctx)
	if err != nil {
		return err
	}
	resp.Outcome = outcome
	return nil
}

func (s *service) Cancel(_ CancelRequest, resp *CancelResponse) error {
	_, log := s.operation()
	log.Debug("blocklist override cancel requested")
	snap, err := s.daemon.CancelGrab()
	if err != nil {
		return err
	}
	resp.Session = snap
	return nil
}

func (s *service) CloseSession(_ CloseRequest, resp *CloseResponse) error {
	_, log := s.operation()
	if err := s.daemon.CloseSession(); err != nil {
		return err
	}
	resp.Closed = true
	log.Info("session closed via IPC")
	return nil
}

func (s *service) Session(_ SessionRequest, resp *SessionResponse) error {
	resp.Session = s.daemon.SessionSnapshot()
	return nil
}

func (s *service) RenamePreview(req RenamePreviewRequest, resp *RenamePreviewResponse) error {
	ctx, log := s.operation()
	scope := sportarr.RenameScope{
		Organization: req.Organization,
		EventID:      req.EventID,
		FightCardID:  req.FightCardID,
	}
	items, err := s.daemon.RenamePreview(ctx, scope)
	if err != nil {
		return err
	}
	resp.Items = items
	log.Debug("rename preview served", logging.Int("item_count", len(items)))
	return nil
}

func (s *service) RenameApply(req RenameApplyRequest, resp *RenameApplyResponse) error {
	ctx, log := s.operation()
	scope := sportarr.RenameScope{
		Organization: req.Organization,
		EventID:      req.EventID,
		FightCardID:  req.FightCardID,
	}
	items, err := s.daemon.RenameApply(ctx, scope)
	if err != nil {
		return err
	}
	resp.Items = items
	log.Info("rename applied via IPC", logging.Int("item_count", len(items)))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	ctx, _ := s.operation()
	status := s.daemon.Status(ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.StartedAt = status.StartedAt
	resp.LockPath = status.LockFilePath
	resp.SocketPath = status.SocketPath
	resp.LogPath = status.LogPath
	resp.Session = status.Session
	if len(status.Checks) > 0 {
		resp.Checks = make([]Check, 0, len(status.Checks))
		for _, check := range status.Checks {
			resp.Checks = append(resp.Checks, Check{
				Name:   check.Name,
				Passed: check.Passed,
				Detail: check.Detail,
			})
		}
	}
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	ctx, _ := s.operation()
	sent, message, err := s.daemon.TestNotification(ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	_, log := s.operation()
	log.Info("daemon stop requested via IPC")
	s.daemon.RequestShutdown()
	resp.Stopping = true
	return nil
}
