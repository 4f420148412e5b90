// Package metaerrors provides structured error types for reachmeta.
//
// Import path: github.com/erraggy/reachmeta/metaerrors
//
// The error types support [errors.Is] and [errors.As], so callers can tell a
// caller-side contract violation (merging records that do not share a key)
// apart from malformed input or bad configuration.
//
// # Error Types
//
//   - [NameMismatchError]: two usage records with different merge keys were merged
//   - [KindMismatchError]: documents of different kinds were joined
//   - [ParseError]: a document could not be decoded
//   - [ValidationError]: a decoded entry is missing a required name or is malformed
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrNameMismatch]: matches any [NameMismatchError]
//   - [ErrKindMismatch]: matches any [KindMismatchError]
//   - [ErrParse]: matches any [ParseError]
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	merged, err := left.MergeWith(right)
//	if errors.Is(err, metaerrors.ErrNameMismatch) {
//	    // the caller grouped records incorrectly; this is a bug, not bad input
//	}
//
//	var vErr *metaerrors.ValidationError
//	if errors.As(err, &vErr) {
//	    fmt.Printf("entry %d in %s: %s\n", vErr.Index, vErr.Path, vErr.Message)
//	}
//
// A NameMismatchError is never recovered from inside reachmeta. Merges either
// succeed completely or fail outright; there is no partial result.
package metaerrors
