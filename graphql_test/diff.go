package graphql_test

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffResponse takes the expected and actual response and compares them with cmp.Diff.
// This function transforms each parameter into a generic type, map[string]interface{},
// before comparing since type information is lost when unmarshaling a response into the
// caller's type, making it very hard to diff directly against Operation.Response.
func (s *Server) DiffResponse(expected, actual interface{}) {
	s.t.Helper()

	expectedMap, actualMap := s.toMap(expected), s.toMap(actual)
	if d := cmp.Diff(expectedMap, actualMap); d != "" {
		s.t.Errorf("unexpected difference between expected and actual response data:\n%s", d)
	}
}

// DiffQuery compares the query text received by the server with expected and reports a
// unified diff on mismatch.
func (s *Server) DiffQuery(expected, actual string) {
	s.t.Helper()

	if expected == actual {
		return
	}

	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		s.t.Fatalf("diff query text: %v", err)
	}
	s.t.Errorf("unexpected difference between expected and actual query:\n%s", d)
}

// toMap round trips v through JSON into a map[string]interface{} so that typed values and
// generic maps compare equal.
func (s *Server) toMap(v interface{}) map[string]interface{} {
	s.t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		s.t.Fatalf("marshal response into bytes: %v", err)
	}

	out := make(map[string]interface{})
	if err := json.Unmarshal(b, &out); err != nil {
		s.t.Fatalf("unmarshal response data into map: %v", err)
	}
	return out
}

// equalVariables takes two variables and makes sure they are equal in length and
// each contain the same keys. The values of the keys are not checked.
func (s *Server) equalVariables(x, y map[string]interface{}) bool {
	if len(x) != len(y) {
		return false
	}

	for k := range x {
		if _, exists := y[k]; !exists {
			return false
		}
	}

	return true
}
