// Package errors provides structured error types for better observability
// and programmatic error handling across the server, client and CLI.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "batch exceeds the maximum number of pairs",
//	    nil,
//	    map[string]any{
//	        "pairs": len(req.Pairs),
//	        "max":   maxPairs,
//	    },
//	)
//
// Callers holding an arbitrary error can recover its code:
//
//	if errors.CodeOf(err) == errors.ErrCodeUnavailable {
//	    // server not reachable
//	}
package errors
