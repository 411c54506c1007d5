// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/counter"
	"github.com/solvernet/solverd/rpc/fixtures"
	"github.com/solvernet/solverd/rpc/handler"
)

// a trivial RPC for exercising the bridge
type Arith struct{}

type ArithArguments struct {
	A int
	B int
}

func (a *Arith) Add(arguments *ArithArguments, reply *int) error {
	*reply = arguments.A + arguments.B
	return nil
}

func newTestHandler(t *testing.T, maximumConnections uint64) (handler.Handler, *counter.Counter) {
	server := rpc.NewServer()
	if err := server.Register(&Arith{}); nil != err {
		t.Fatalf("register error: %s", err)
	}

	count := new(counter.Counter)
	h := handler.New(logger.New(fixtures.LogCategory), server, time.Now(), "7.5", count, maximumConnections)
	return h, count
}

func TestRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := newTestHandler(t, 10)

	body := bytes.NewBufferString(`{"method":"Arith.Add","params":[{"A":40,"B":2}],"id":1}`)
	r := httptest.NewRequest(http.MethodPost, "/solverd/rpc", body)
	w := httptest.NewRecorder()

	h.RPC(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status")

	var reply struct {
		Result int         `json:"result"`
		Error  interface{} `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "wrong reply encoding")
	assert.Nil(t, reply.Error, "wrong rpc error")
	assert.Equal(t, 42, reply.Result, "wrong result")
}

func TestRPCWhenWrongMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := newTestHandler(t, 10)

	r := httptest.NewRequest(http.MethodGet, "/solverd/rpc", nil)
	w := httptest.NewRecorder()

	h.RPC(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "wrong status")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, count := newTestHandler(t, 1)

	// occupy the only slot
	count.Increment()

	body := bytes.NewBufferString(`{"method":"Arith.Add","params":[{"A":1,"B":2}],"id":1}`)
	r := httptest.NewRequest(http.MethodPost, "/solverd/rpc", body)
	w := httptest.NewRecorder()

	h.RPC(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "wrong status")
}

func TestDetails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := newTestHandler(t, 10)

	_, local, err := net.ParseCIDR("127.0.0.0/8")
	assert.Nil(t, err, "wrong cidr")
	h.SetAllow(map[string][]*net.IPNet{
		"details": {local},
	})

	r := httptest.NewRequest(http.MethodGet, "/solverd/details", nil)
	r.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()

	h.Details(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status")

	var reply struct {
		Version string `json:"version"`
		Uptime  string `json:"uptime"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &reply)
	assert.Nil(t, err, "wrong reply encoding")
	assert.Equal(t, "7.5", reply.Version, "wrong version")
	assert.NotEqual(t, "", reply.Uptime, "wrong uptime")
}

func TestDetailsWhenDenied(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := newTestHandler(t, 10)

	_, local, err := net.ParseCIDR("127.0.0.0/8")
	assert.Nil(t, err, "wrong cidr")
	h.SetAllow(map[string][]*net.IPNet{
		"details": {local},
	})

	r := httptest.NewRequest(http.MethodGet, "/solverd/details", nil)
	r.RemoteAddr = "10.1.2.3:12345"
	w := httptest.NewRecorder()

	h.Details(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status")
}

func TestRoot(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, _ := newTestHandler(t, 10)

	r := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()

	h.Root(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status")
}
