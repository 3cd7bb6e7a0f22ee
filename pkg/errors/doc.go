// Package errors provides structured error types for better observability
// and programmatic error handling across the view layer.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeUnsupportedValueShape,
//	    "value cannot be rendered",
//	    map[string]any{
//	        "type": fmt.Sprintf("%T", v),
//	    },
//	)
//
// Codes survive wrapping, so request handlers can map them to HTTP
// status codes with CodeOf.
package errors
