// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - bridge HTTP requests onto the JSON RPC server
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/counter"
	"github.com/solvernet/solverd/mode"
)

// Handler - the methods wired into the HTTPS multiplexer
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
	SetAllow(allow map[string][]*net.IPNet)
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	count              *counter.Counter
	maximumConnections uint64
	allow              map[string][]*net.IPNet
}

// New - create the HTTP bridge onto an RPC server
func New(
	log *logger.L,
	server *rpc.Server,
	start time.Time,
	version string,
	count *counter.Counter,
	maximumConnections uint64,
) Handler {
	return &httpHandler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		count:              count,
		maximumConnections: maximumConnections,
	}
}

// SetAllow - set the client subnets allowed on restricted paths
func (s *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	s.allow = allow
}

// this matches anything not matched and returns error
func (s *httpHandler) Root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (s *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer s.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		sendInternalServerError(w)
		return
	}
}

// Details - daemon status for allowed clients
func (s *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("details", r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	s.count.Increment()
	defer s.count.Decrement()

	type theReply struct {
		Chain   string `json:"chain"`
		Mode    string `json:"mode"`
		RPCs    uint64 `json:"rpcs"`
		Version string `json:"version"`
		Uptime  string `json:"uptime"`
	}

	reply := theReply{
		Chain:   mode.ChainName(),
		Mode:    mode.String(),
		RPCs:    s.count.Uint64(),
		Version: s.version,
		Uptime:  time.Since(s.start).String(),
	}

	sendReply(w, reply)
}

// check a remote address against the allowed subnets of a path
func (s *httpHandler) isAllowed(path string, r *http.Request) bool {
	last := strings.LastIndex(r.RemoteAddr, ":")
	if last < 0 {
		return false
	}

	addr := strings.Trim(r.RemoteAddr[:last], "[]")
	ip := net.ParseIP(addr)
	if nil == ip {
		return false
	}

	for _, cidr := range s.allow[path] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, "Too Many Requests", http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(text)
}
