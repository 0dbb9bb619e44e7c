// Package graphql_test exports a Server that facilitates the testing of client
// integrations of GraphQL by mocking a GraphQL server.
package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

// Server is a type that contains one exported struct field - a URL that points to a
// httptest.Server that will mock a GraphQL server that can be used to test client
// integrations.
type Server struct {
	URL string

	mu         sync.Mutex
	operations []Operation
	errors     []OperationError
	requests   []RecordedRequest

	t      *testing.T
	server *httptest.Server
}

// RecordedRequest is a request received by the Server.
type RecordedRequest struct {
	Method string
	Header http.Header
	Body   Request
}

// NewServer returns a configured Server. If useDefaultOperations is set to true then
// default operations will be registered in the server. The type returned contains a
// closing function which should be immediately registered using t.Cleanup after calling
// NewServer, example:
//
//	ts := graphql_test.NewServer(t, true)
//	t.Cleanup(ts.Close)
//
// This will ensure that no resources are dangling.
func NewServer(t *testing.T, useDefaultOperations bool) *Server {
	s := Server{
		t: t,
	}

	if useDefaultOperations {
		for _, op := range DefaultOperations() {
			s.Register(op)
		}
	}

	var mux http.ServeMux
	mux.HandleFunc("/", s.handle)

	s.server = httptest.NewServer(&mux)
	s.URL = s.server.URL

	return &s
}

// handle matches the incoming request against the registered errors first and then the
// registered operations, by operation name and variable names.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var reqBody Request
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.Wrap(err, "decode request body"))
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Header: r.Header.Clone(),
		Body:   reqBody,
	})
	operations, opErrors := s.operations, s.errors
	s.mu.Unlock()

	for i := range opErrors {
		if opErrors[i].Identifier == reqBody.OperationName {
			s.write(w, opErrors[i].Status, Response{
				Data:   opErrors[i].Data,
				Errors: opErrors[i].Errors,
			})
			return
		}
	}

	for i := range operations {
		if operations[i].Identifier != reqBody.OperationName {
			continue
		}
		if s.equalVariables(operations[i].Variables, reqBody.Variables) {
			s.write(w, http.StatusOK, Response{Data: operations[i].Response})
			return
		}
	}

	s.respondError(w, http.StatusNotFound, errors.Errorf("operation %q not found", reqBody.OperationName))
}

// Close closes the underlying httptest.Server.
func (s *Server) Close() {
	s.server.Close()
}

// Register registers an Operation that the server will recognize and respond to.
func (s *Server) Register(operation Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations = append(s.operations, operation)
}

// RegisterError registers an OperationError as an error that the server will recognize
// and respond to.
func (s *Server) RegisterError(operation OperationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, operation)
}

// Requests returns the requests the server has received so far, in order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request the server received. It fails the test if
// there is none.
func (s *Server) LastRequest() RecordedRequest {
	s.t.Helper()

	reqs := s.Requests()
	if len(reqs) == 0 {
		s.t.Fatalf("no requests received by graphql test server")
	}
	return reqs[len(reqs)-1]
}
