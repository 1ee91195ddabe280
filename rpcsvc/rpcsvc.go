/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package rpcsvc exposes a built, read-only vfindex.QueryAPI over
// net/rpc, the same worker-over-HTTP pattern sr.Worker uses to expose a
// running InMAP simulation to a remote caller.
package rpcsvc

import (
	"fmt"
	"net"
	"net/http"
	"net/rpc"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/vfsearch/vfindex"
)

// Port is the default RPC listening port, mirroring sr.RPCPort.
var Port = "6061"

// Server wraps a vfindex.QueryAPI for RPC access. It should not be
// interacted with directly -- construct one with NewServer and reach it
// only through rpc.Call or a Client -- but it is exported to meet RPC
// requirements.
type Server struct {
	query *vfindex.QueryAPI
}

// ClosestRequest is the input to a Closest RPC call.
type ClosestRequest struct {
	X, Y float64
}

// ClosestReply is the output of a Closest RPC call.
type ClosestReply struct {
	Index int
}

// StatsRequest is empty: Stats takes no input.
type StatsRequest struct{}

// NewServer wraps query for RPC access. query's index must already be
// valid (built via Refine/RefineTimes/RefineUntil) before Listen is
// called: Closest calls ClosestXYReadOnly, which never performs an
// implicit rebuild, so concurrent RPC callers never race on one.
func NewServer(query *vfindex.QueryAPI) (*Server, error) {
	if !query.Index.Valid() {
		return nil, fmt.Errorf("rpcsvc: NewServer: index must be refined before serving")
	}
	return &Server{query: query}, nil
}

// Closest answers the RPC equivalent of QueryAPI.ClosestXYReadOnly. It
// meets the requirements for use with rpc.Call.
func (s *Server) Closest(req *ClosestRequest, reply *ClosestReply) error {
	idx, err := s.query.ClosestXYReadOnly(req.X, req.Y)
	if err != nil {
		return err
	}
	reply.Index = idx
	return nil
}

// Stats answers the RPC equivalent of QueryAPI.Stats. It meets the
// requirements for use with rpc.Call.
func (s *Server) Stats(req *StatsRequest, reply *vfindex.Stats) error {
	*reply = s.query.Stats()
	return nil
}

// Listen registers s and serves RPC requests over port until an error
// occurs or the listener is closed.
func (s *Server) Listen(port string) error {
	rpc.Register(s)
	rpc.HandleHTTP()
	l, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("rpcsvc: listen on port %s: %w", port, err)
	}
	logrus.WithField("port", port).Info("rpcsvc: serving nearest-point queries")
	return http.Serve(l, nil)
}

// Client is a thin convenience wrapper over an *rpc.Client dialed to a
// running Server.
type Client struct {
	rpc *rpc.Client
}

// Dial connects to a Server listening at addr (host:port).
func Dial(addr string) (*Client, error) {
	c, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rpcsvc: dial %s: %w", addr, err)
	}
	return &Client{rpc: c}, nil
}

// Closest calls the remote Server's Closest method.
func (c *Client) Closest(x, y float64) (int, error) {
	req := &ClosestRequest{X: x, Y: y}
	var reply ClosestReply
	if err := c.rpc.Call("Server.Closest", req, &reply); err != nil {
		return 0, fmt.Errorf("rpcsvc: Closest(%v,%v): %w", x, y, err)
	}
	return reply.Index, nil
}

// Stats calls the remote Server's Stats method.
func (c *Client) Stats() (vfindex.Stats, error) {
	var reply vfindex.Stats
	if err := c.rpc.Call("Server.Stats", &StatsRequest{}, &reply); err != nil {
		return vfindex.Stats{}, fmt.Errorf("rpcsvc: Stats: %w", err)
	}
	return reply, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.rpc.Close() }
