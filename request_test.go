package gq

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestAssemble tests the header, mode, and option precedence of the Assemble function.
func TestAssemble(t *testing.T) {
	tt := []struct {
		Name            string
		Config          Config
		Options         CallOptions
		ExpectedHeader  http.Header
		ExpectedMode    string
		ExpectedOptions map[string]string
	}{
		{
			Name:   "Defaults",
			Config: Config{Endpoint: "https://x/graphql"},
			ExpectedHeader: http.Header{
				"Content-Type": []string{"application/json"},
			},
			ExpectedMode:    DefaultMode,
			ExpectedOptions: map[string]string{},
		},
		{
			Name: "CallHeaderWinsOverClientHeader",
			Config: Config{
				Endpoint: "https://x/graphql",
				RequestConfig: RequestConfig{
					Header: map[string]string{"A": "1", "B": "1"},
				},
			},
			Options: CallOptions{
				RequestConfig: RequestConfig{
					Header: map[string]string{"A": "2"},
				},
			},
			ExpectedHeader: http.Header{
				"A":            []string{"2"},
				"B":            []string{"1"},
				"Content-Type": []string{"application/json"},
			},
			ExpectedMode:    DefaultMode,
			ExpectedOptions: map[string]string{},
		},
		{
			Name: "ClientHeaderWinsOverDefaults",
			Config: Config{
				RequestConfig: RequestConfig{
					Header: map[string]string{"content-type": "application/graphql+json"},
				},
			},
			ExpectedHeader: http.Header{
				"Content-Type": []string{"application/graphql+json"},
			},
			ExpectedMode:    DefaultMode,
			ExpectedOptions: map[string]string{},
		},
		{
			Name: "HeaderNamesAreCaseInsensitive",
			Config: Config{
				RequestConfig: RequestConfig{
					Header: map[string]string{"x-api-key": "client"},
				},
			},
			Options: CallOptions{
				RequestConfig: RequestConfig{
					Header: map[string]string{"X-API-KEY": "call"},
				},
			},
			ExpectedHeader: http.Header{
				"X-Api-Key":    []string{"call"},
				"Content-Type": []string{"application/json"},
			},
			ExpectedMode:    DefaultMode,
			ExpectedOptions: map[string]string{},
		},
		{
			Name: "CallOptionsWinOverClientOptions",
			Config: Config{
				RequestConfig: RequestConfig{
					Mode:    "same-origin",
					Options: map[string]string{"credentials": "omit", "cache": "no-store"},
				},
			},
			Options: CallOptions{
				RequestConfig: RequestConfig{
					Options: map[string]string{"credentials": "include"},
				},
			},
			ExpectedHeader: http.Header{
				"Content-Type": []string{"application/json"},
			},
			ExpectedMode:    "same-origin",
			ExpectedOptions: map[string]string{"credentials": "include", "cache": "no-store"},
		},
		{
			Name: "CallModeWinsOverClientMode",
			Config: Config{
				RequestConfig: RequestConfig{Mode: "same-origin"},
			},
			Options: CallOptions{
				RequestConfig: RequestConfig{Mode: "no-cors"},
			},
			ExpectedHeader: http.Header{
				"Content-Type": []string{"application/json"},
			},
			ExpectedMode:    "no-cors",
			ExpectedOptions: map[string]string{},
		},
	}

	for _, test := range tt {
		test := test

		fn := func(t *testing.T) {
			t.Parallel()

			req, err := Assemble(test.Config, `query GetX { x }`, test.Options)
			if err != nil {
				t.Fatalf("error assembling request: %v", err)
			}

			if d := cmp.Diff(test.ExpectedHeader, req.Header); d != "" {
				t.Errorf("unexpected difference between expected and actual header:\n%s", d)
			}

			if e, a := test.ExpectedMode, req.Mode; e != a {
				t.Errorf("expected mode to be \"%s\", got \"%s\"", e, a)
			}

			if d := cmp.Diff(test.ExpectedOptions, req.Options); d != "" {
				t.Errorf("unexpected difference between expected and actual options:\n%s", d)
			}

			// The mode marker is never sent as a header.
			if v := req.Header.Get("Mode"); v != "" {
				t.Errorf("expected no mode header, got \"%s\"", v)
			}
		}
		t.Run(test.Name, fn)
	}
}

// TestAssembleEndpointAndMethod tests endpoint override and method defaulting.
func TestAssembleEndpointAndMethod(t *testing.T) {
	t.Parallel()

	cfg := Config{Endpoint: "https://client/graphql"}

	req, err := Assemble(cfg, `query GetX { x }`, CallOptions{})
	if err != nil {
		t.Fatalf("error assembling request: %v", err)
	}

	if e, a := "https://client/graphql", req.Endpoint; e != a {
		t.Errorf("expected endpoint to be \"%s\", got \"%s\"", e, a)
	}

	if e, a := http.MethodPost, req.Method; e != a {
		t.Errorf("expected method to be \"%s\", got \"%s\"", e, a)
	}

	req, err = Assemble(cfg, `query GetX { x }`, CallOptions{
		Endpoint: "https://call/graphql",
		Method:   http.MethodPut,
	})
	if err != nil {
		t.Fatalf("error assembling request: %v", err)
	}

	if e, a := "https://call/graphql", req.Endpoint; e != a {
		t.Errorf("expected endpoint to be \"%s\", got \"%s\"", e, a)
	}

	if e, a := http.MethodPut, req.Method; e != a {
		t.Errorf("expected method to be \"%s\", got \"%s\"", e, a)
	}

	// An unconfigured client targets an empty endpoint.
	req, err = Assemble(Config{}, `query GetX { x }`, CallOptions{})
	if err != nil {
		t.Fatalf("error assembling request: %v", err)
	}

	if e, a := "", req.Endpoint; e != a {
		t.Errorf("expected endpoint to be \"%s\", got \"%s\"", e, a)
	}
}

// TestAssembleBody tests the JSON body produced by the Assemble function.
func TestAssembleBody(t *testing.T) {
	tt := []struct {
		Name         string
		Document     string
		Variables    map[string]interface{}
		ExpectedBody map[string]interface{}
	}{
		{
			Name:      "NamedWithVariables",
			Document:  `query GetX($id: ID!) { x(id: $id) { id } }`,
			Variables: map[string]interface{}{"id": "1"},
			ExpectedBody: map[string]interface{}{
				"query":         `query GetX($id: ID!) { x(id: $id) { id } }`,
				"variables":     map[string]interface{}{"id": "1"},
				"operationName": "GetX",
			},
		},
		{
			Name:     "AnonymousWithoutVariables",
			Document: `query { x }`,
			ExpectedBody: map[string]interface{}{
				"query":         `query { x }`,
				"variables":     map[string]interface{}{},
				"operationName": "_",
			},
		},
	}

	for _, test := range tt {
		test := test

		fn := func(t *testing.T) {
			t.Parallel()

			req, err := Assemble(Config{}, test.Document, CallOptions{Variables: test.Variables})
			if err != nil {
				t.Fatalf("error assembling request: %v", err)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(req.Body, &body); err != nil {
				t.Fatalf("error unmarshaling request body: %v", err)
			}

			if d := cmp.Diff(test.ExpectedBody, body); d != "" {
				t.Errorf("unexpected difference between expected and actual body:\n%s", d)
			}

			if e, a := test.ExpectedBody["operationName"], req.OperationName; e != a {
				t.Errorf("expected operation name to be \"%s\", got \"%s\"", e, a)
			}
		}
		t.Run(test.Name, fn)
	}
}

// TestAssembleUnencodableVariables tests that a body encoding failure is returned.
func TestAssembleUnencodableVariables(t *testing.T) {
	t.Parallel()

	_, err := Assemble(Config{}, `query GetX { x }`, CallOptions{
		Variables: map[string]interface{}{"fn": func() {}},
	})
	if err == nil {
		t.Fatal("expected error encoding variables, got nil")
	}
}
