package graphql_test

import (
	"encoding/json"
	"net/http"
)

type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type ResponseError struct {
	Message    string      `json:"message"`
	Locations  []Location  `json:"locations,omitempty"`
	Path       []string    `json:"path,omitempty"`
	Extensions interface{} `json:"extensions,omitempty"`
}

type Response struct {
	Data   interface{}     `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.write(w, status, Response{
		Errors: []ResponseError{
			{
				Message: err.Error(),
			},
		},
	})
}

func (s *Server) write(w http.ResponseWriter, status int, res Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.t.Errorf("encode graphql response: %v", err)
	}
}
