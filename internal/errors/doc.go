// Package errors provides structured error handling for talis.
//
// Errors carry a Code, a message and optional metadata. Codes map onto gRPC
// status codes so the transport layer can surface them unchanged.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgument("roller is required")
//	err := errors.OutOfRangef("dice count %d exceeds maximum %d", n, max)
//
// Wrapping errors keeps the code of the wrapped error:
//
//	if err := kv.SetItem(ctx, key, value); err != nil {
//	    return errors.Wrap(err, "failed to persist state")
//	}
//
// # Validation Errors
//
// Persisted payloads and config patches are checked with the builder. All
// field problems are collected before the payload is rejected as a whole:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateIntRange("config.maxDice", cfg.MaxDice, 1, 100, vb)
//	errors.ValidateEnum("config.quickButtons[0].type", t, allowed, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC Integration
//
//	return nil, errors.ToGRPCError(err)
package errors
