// Package v1alpha1 handles the talis gRPC service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/notify"
	"github.com/KirkDiggler/talis/internal/orchestrators/dice"
	"github.com/KirkDiggler/talis/internal/persist"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	DiceService dice.Service
	// Notices, when set, is drained into every response
	Notices *notify.Recorder
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// Handler implements the talis gRPC service
type Handler struct {
	diceService dice.Service
	notices     *notify.Recorder
}

var _ TalisServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		diceService: cfg.DiceService,
		notices:     cfg.Notices,
	}, nil
}

// Roll rolls on one roller
func (h *Handler) Roll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()
	r := newRequest(fields)
	input := &dice.RollInput{
		Roller:        r.requiredString("roller"),
		Count:         r.optionalInt("count"),
		DiceType:      r.optionalInt("diceType"),
		QuickButtonID: r.optionalString("quickButtonId"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.Roll(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"roller": output.Roller,
		"result": output.Result,
		"state":  output.State,
	})
}

// GetState returns one or every roller snapshot
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req.AsMap())
	input := &dice.GetStateInput{
		Roller: r.optionalString("roller"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.GetState(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"rollers": output.States,
	})
}

// UpdateConfig applies a config patch to one roller
func (h *Handler) UpdateConfig(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req.AsMap())
	input := &dice.UpdateConfigInput{
		Roller: r.requiredString("roller"),
		Patch:  r.requiredObject("patch"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.UpdateConfig(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"state": output.State,
	})
}

// ClearHistory empties one or every roll history
func (h *Handler) ClearHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req.AsMap())
	input := &dice.ClearHistoryInput{
		Roller: r.optionalString("roller"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.ClearHistory(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"rollsCleared": output.RollsCleared,
	})
}

// ClearAllStorage wipes every roller's persisted data
func (h *Handler) ClearAllStorage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req.AsMap())
	input := &dice.ClearAllStorageInput{
		Confirm: r.optionalBool("confirm"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.ClearAllStorage(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return h.respond(map[string]any{
		"keysRemoved": output.KeysRemoved,
	})
}

// respond converts body to a Struct and attaches pending notices
func (h *Handler) respond(body map[string]any) (*structpb.Struct, error) {
	if h.notices != nil {
		if notices := h.notices.Drain(); len(notices) > 0 {
			body["notices"] = notices
		}
	}

	plain, err := persist.ToMap(body)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	out, err := structpb.NewStruct(plain)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}
