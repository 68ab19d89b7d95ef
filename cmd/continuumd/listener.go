// NDJSON-over-Unix-socket transport (spec §6). One connection may carry many
// request/reply lines; each line is handled independently and replies are
// written back in the order their handler returns (no head-of-line
// blocking across connections — each connection gets its own goroutine,
// matching the teacher's per-request-goroutine HTTP handler style in
// pkg/server/providers/rest).
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"sync"

	"github.com/continuum-run/continuum/pkg/monitoring/iface"
	"github.com/continuum-run/continuum/pkg/runtime"
)

type socketServer struct {
	socketPath string
	registry   *runtime.Registry
	log        iface.Logger

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

func newSocketServer(socketPath string, registry *runtime.Registry, log iface.Logger) *socketServer {
	return &socketServer{socketPath: socketPath, registry: registry, log: log}
}

// Serve removes any stale socket file, binds a new one, and accepts
// connections until ctx is cancelled.
func (s *socketServer) Serve(ctx context.Context) error {
	_ = os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) || isClosedConnErr(err) {
				s.wg.Wait()
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

func isClosedConnErr(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func (s *socketServer) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			_ = enc.Encode(response{Success: false, Error: "malformed request envelope: " + err.Error()})
			continue
		}

		result, err := s.registry.Dispatch(ctx, req.Command, req.Params)
		var resp response
		if err != nil {
			resp = errorResponse(err)
			s.log.Warning(ctx, "command dispatch failed", map[string]any{"command": req.Command, "error": err.Error()})
		} else {
			resp = successResponse(result)
		}
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

// Close stops accepting new connections and waits for in-flight ones to
// drain.
func (s *socketServer) Close() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return nil
	}
	err := ln.Close()
	s.wg.Wait()
	return err
}
