package gq

import "strings"

// AnonymousOperation is the operation name sent when no name can be recovered from a
// document.
const AnonymousOperation = "_"

// operationKeywords are the keywords that introduce an operation definition.
var operationKeywords = []string{"query", "mutation", "subscription"}

// OperationName returns the name of the operation defined in document, or AnonymousOperation
// when it cannot find one. It does not parse the document. It looks for whichever of the
// query, mutation, or subscription keywords, followed by a space, appears first in the text
// and reads from after that space up to the next "(", "{", or whitespace:
//
//	query GetUser($id: ID!) { ... }   -> GetUser
//	mutation DeleteUser { ... }       -> DeleteUser
//	query { ... }                     -> _
//
// Keywords are matched anywhere, including inside comments and string literals, so a
// description that mentions "subscription" ahead of the real operation wins the scan. Words
// that only start with a keyword, such as queryable, are not matches.
func OperationName(document string) string {
	pos, keyword := -1, ""
	for _, kw := range operationKeywords {
		if i := strings.Index(document, kw+" "); i >= 0 && (pos < 0 || i < pos) {
			pos, keyword = i, kw
		}
	}
	if pos < 0 {
		return AnonymousOperation
	}

	// Skip the keyword and the space after it.
	start := pos + len(keyword) + 1
	if start >= len(document) {
		return AnonymousOperation
	}
	rest := document[start:]

	end := strings.IndexFunc(rest, isNameTerminator)
	if end <= 0 {
		return AnonymousOperation
	}
	return rest[:end]
}

// isNameTerminator reports whether r ends an operation name: the start of a variable
// definition list, the start of a selection set, or whitespace.
func isNameTerminator(r rune) bool {
	switch r {
	case '(', '{', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
