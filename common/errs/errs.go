package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when a caller-supplied value is rejected
	// before any external call is made.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned for unknown networks, modules or handlers.
	Unsupported = ErrorKind("Unsupported")

	// Unauthenticated is returned when an operation requires a connected
	// wallet session and none is present.
	Unauthenticated = ErrorKind("Unauthenticated")

	// Conflict is returned when an operation is attempted while another
	// operation of the same workflow is still in flight, or from a state
	// that does not allow it.
	Conflict = ErrorKind("Conflict")

	// ExecutionFailed is returned when a transaction is accepted by the node
	// but rejected by the contract (nonzero result code).
	ExecutionFailed = ErrorKind("Execution Failed")

	// Aggregation is returned when the marketplace aggregation fails as a
	// whole (level-1 failure), as opposed to per-record skips.
	Aggregation = ErrorKind("Aggregation Failed")

	SomethingWentWrong = ErrorKind("Something went wrong")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
