package errors

import "net/http"

var (
	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"Device position is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrNetworkFailure = New(
		"NETWORK_FAILURE",
		"Remote service request failed",
		http.StatusBadGateway,
	)

	ErrDecodeFailure = New(
		"DECODE_FAILURE",
		"Remote service returned malformed data",
		http.StatusBadGateway,
	)

	ErrPersistenceCorrupt = New(
		"PERSISTENCE_CORRUPT",
		"Stored value is corrupt",
		http.StatusInternalServerError,
	)

	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Filter must have the form namespace:value",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidNodeID = New(
		"INVALID_NODE_ID",
		"Invalid node ID",
		http.StatusBadRequest,
	)

	ErrNodeUpdateFailed = New(
		"NODE_UPDATE_FAILED",
		"Node update was rejected",
		http.StatusBadGateway,
	)

	ErrStoreError = New(
		"STORE_ERROR",
		"Preferences store operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
