package graphql_test

// Operation is a named operation the Server responds to, along with the data it responds
// with.
type Operation struct {
	// Identifier is the operation name the request must carry for the Server to match it,
	// e.g. GetEntity for the document
	//
	//	query GetEntity($id: ID!) {
	//		getEntity(id: $id) {
	//			id
	//		}
	//	}
	Identifier string

	// Document is the GraphQL document that produces this operation. The Server does not
	// look at it; it is there for tests to send.
	Document string

	// Variables represents the map of variables that should be passed along with the
	// operation whenever it is invoked on the Server. Only the names are matched.
	Variables map[string]interface{}

	// Response is the value of the data member returned when the operation matches.
	Response interface{}
}

// OperationError is a named operation the Server responds to with errors.
type OperationError struct {
	// Identifier is the operation name the request must carry for the Server to match it.
	Identifier string

	// Status is the HTTP status code of the response.
	Status int

	// Errors is the errors member of the response.
	Errors []ResponseError

	// Data is an optional data member returned alongside Errors.
	Data interface{}
}

// --------------------------------------------------------- //
// --- DEFAULT OPERATIONS ARE DEFINED BELOW THIS COMMENT --- //
// --------------------------------------------------------- //

// Entity is the type returned by the default operations.
type Entity struct {
	ID       int    `json:"id"`
	FieldOne string `json:"fieldOne"`
	FieldTwo string `json:"fieldTwo"`
}

var QueryGetEntity = Operation{
	Identifier: "GetEntity",
	Document: `query GetEntity($id: ID!) {
	getEntity(id: $id) {
		id
		fieldOne
		fieldTwo
	}
}`,
	Variables: map[string]interface{}{
		"id": 1,
	},
	Response: map[string]interface{}{
		"getEntity": Entity{
			ID:       1,
			FieldOne: "foo",
			FieldTwo: "bar",
		},
	},
}

var MutationCreateEntity = Operation{
	Identifier: "CreateEntity",
	Document: `mutation CreateEntity($entity: EntityInput!) {
	createEntity(entity: $entity) {
		id
		fieldOne
		fieldTwo
	}
}`,
	Variables: map[string]interface{}{
		"entity": Entity{
			FieldOne: "baz",
			FieldTwo: "quux",
		},
	},
	Response: map[string]interface{}{
		"createEntity": Entity{
			ID:       2,
			FieldOne: "baz",
			FieldTwo: "quux",
		},
	},
}

var MutationDeleteEntity = Operation{
	Identifier: "DeleteEntity",
	Document: `mutation DeleteEntity {
	deleteEntity(id: 1) {
		id
	}
}`,
	Response: map[string]interface{}{
		"deleteEntity": map[string]interface{}{
			"id": 1,
		},
	},
}

var QueryAnonymous = Operation{
	Identifier: "_",
	Document: `query {
	entityCount
}`,
	Response: map[string]interface{}{
		"entityCount": 2,
	},
}

// DefaultOperations returns the operations registered by NewServer when asked to use the
// defaults.
func DefaultOperations() []Operation {
	return []Operation{
		QueryGetEntity,
		MutationCreateEntity,
		MutationDeleteEntity,
		QueryAnonymous,
	}
}
