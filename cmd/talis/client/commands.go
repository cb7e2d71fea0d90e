package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/talis/internal/handlers/talis/v1alpha1"
)

var (
	rollDiceType int
	rollButton   string
)

var rollCmd = &cobra.Command{
	Use:   "roll <roller> [count]",
	Short: "Roll on the server",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{"roller": args[0]}
		if len(args) == 2 {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number, got %q", args[1])
			}
			fields["count"] = count
		}
		if rollDiceType != 0 {
			fields["diceType"] = rollDiceType
		}
		if rollButton != "" {
			fields["quickButtonId"] = rollButton
		}
		return invoke(cmd, fields, unary(v1alpha1.TalisServiceClient.Roll))
	},
}

var stateCmd = &cobra.Command{
	Use:   "state [roller]",
	Short: "Show roller state held by the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{}
		if len(args) == 1 {
			fields["roller"] = args[0]
		}
		return invoke(cmd, fields, unary(v1alpha1.TalisServiceClient.GetState))
	},
}

var configCmd = &cobra.Command{
	Use:   "config <roller> <json-patch>",
	Short: "Apply a config patch, for example '{\"maxDice\": 30}'",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch structpb.Struct
		if err := protojson.Unmarshal([]byte(args[1]), &patch); err != nil {
			return fmt.Errorf("patch must be a JSON object: %w", err)
		}
		fields := map[string]any{
			"roller": args[0],
			"patch":  patch.AsMap(),
		}
		return invoke(cmd, fields, unary(v1alpha1.TalisServiceClient.UpdateConfig))
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history [roller]",
	Short: "Clear roll history on the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]any{}
		if len(args) == 1 {
			fields["roller"] = args[0]
		}
		return invoke(cmd, fields, unary(v1alpha1.TalisServiceClient.ClearHistory))
	},
}

var clearAllConfirm bool

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Delete every saved roller setting on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd, map[string]any{"confirm": clearAllConfirm}, unary(v1alpha1.TalisServiceClient.ClearAllStorage))
	},
}

// unary adapts a client method expression to a call
func unary(m func(v1alpha1.TalisServiceClient, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)) call {
	return func(ctx context.Context, client v1alpha1.TalisServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		return m(client, ctx, req)
	}
}

func init() {
	rollCmd.Flags().IntVar(&rollDiceType, "dice-type", 0, "die size for the polyhedral roller")
	rollCmd.Flags().StringVar(&rollButton, "button", "", "press a quick button by id instead")
	clearAllCmd.Flags().BoolVar(&clearAllConfirm, "yes", false, "confirm deleting all saved settings")
}
