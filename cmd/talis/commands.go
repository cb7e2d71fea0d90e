package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/talis/internal/entities"
	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/orchestrators/dice"
	"github.com/KirkDiggler/talis/internal/preferences"
	"github.com/KirkDiggler/talis/internal/rollers"
)

var stateCmd = &cobra.Command{
	Use:   "state [roller]",
	Short: "Show roller configuration and history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &dice.GetStateInput{}
		if len(args) == 1 {
			input.Roller = args[0]
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.GetState(ctx, input)
			if err != nil {
				return err
			}
			p := a.printer(cmd.OutOrStdout())
			p.notices(a.notices.Drain())
			return p.print(output.States, func(w io.Writer) {
				for _, st := range output.States {
					fmt.Fprintf(w, "%s (%s)\n", a.localizer.T(rollers.Kind(st.Roller).Label()), st.Status)
					writeIndentedYAML(w, st.State)
				}
			})
		})
	},
}

func writeIndentedYAML(w io.Writer, v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(w, "  %v\n", v)
		return
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Change roller configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <roller> key=value...",
	Short: "Set configuration fields",
	Long: `Set configuration fields. Values are parsed as YAML scalars and dotted
keys address nested maps. Examples:

  talis config set shadowrun maxDice=30 sortDice=true
  talis config set polyhedral maxQuantity.20=50
  talis config set daggerheart showModifier=true modifier=-2`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.UpdateConfig(ctx, &dice.UpdateConfigInput{
				Roller: args[0],
				Patch:  patch,
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.State, nil)
		})
	},
}

// parseAssignments turns key=value pairs into a nested patch
func parseAssignments(pairs []string) (map[string]any, error) {
	patch := make(map[string]any)
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.InvalidArgumentf("expected key=value, got %q", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, errors.InvalidArgumentf("invalid value for %s: %v", key, err)
		}

		path := strings.Split(key, ".")
		node := patch
		for _, part := range path[:len(path)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
	return patch, nil
}

var quickButtonCmd = &cobra.Command{
	Use:     "quick-button",
	Aliases: []string{"qb"},
	Short:   "Manage quick buttons of the shadowrun and d6 rollers",
}

var quickButtonType string

var quickButtonAddCmd = &cobra.Command{
	Use:   "add <roller> <amount>",
	Short: "Add a quick button",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.InvalidArgumentf("amount must be a number, got %q", args[1])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.AddQuickButton(ctx, &dice.AddQuickButtonInput{
				Roller: args[0],
				Amount: amount,
				Type:   entities.QuickButtonType(quickButtonType),
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Button, func(w io.Writer) {
				fmt.Fprintf(w, "Added %s (%d, %s)\n", output.Button.ID, output.Button.Amount, output.Button.Type)
			})
		})
	},
}

var (
	quickButtonAmount  int
	quickButtonNewType string
)

var quickButtonUpdateCmd = &cobra.Command{
	Use:   "update <roller> <id>",
	Short: "Change a quick button",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch entities.QuickButtonPatch
		if cmd.Flags().Changed("amount") {
			patch.Amount = &quickButtonAmount
		}
		if cmd.Flags().Changed("type") {
			typ := entities.QuickButtonType(quickButtonNewType)
			patch.Type = &typ
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.UpdateQuickButton(ctx, &dice.UpdateQuickButtonInput{
				Roller: args[0],
				ID:     args[1],
				Patch:  patch,
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Buttons, nil)
		})
	},
}

var quickButtonRemoveCmd = &cobra.Command{
	Use:   "remove <roller> <id>",
	Short: "Remove a quick button",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.RemoveQuickButton(ctx, &dice.RemoveQuickButtonInput{
				Roller: args[0],
				ID:     args[1],
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Buttons, nil)
		})
	},
}

var coinTypeCmd = &cobra.Command{
	Use:   "coin-type",
	Short: "Manage custom coin types",
}

var coinTypeAddCmd = &cobra.Command{
	Use:   "add <name> <heads> <tails>",
	Short: "Add a coin type",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.AddCoinType(ctx, &dice.AddCoinTypeInput{
				Name:  args[0],
				Heads: args[1],
				Tails: args[2],
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.CoinType, func(w io.Writer) {
				fmt.Fprintf(w, "Added %s (%s)\n", output.CoinType.Name, output.CoinType.ID)
			})
		})
	},
}

var coinTypeRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a coin type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.RemoveCoinType(ctx, &dice.RemoveCoinTypeInput{ID: args[0]})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output, func(w io.Writer) {
				fmt.Fprintf(w, "Removed %s, selected %s\n", args[0], output.SelectedCoinTypeID)
			})
		})
	},
}

var coinTypeSelectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Select the coin type to flip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.SelectCoinType(ctx, &dice.SelectCoinTypeInput{ID: args[0]})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.CoinType, func(w io.Writer) {
				fmt.Fprintf(w, "Selected %s\n", output.CoinType.Name)
			})
		})
	},
}

var diceTypeQuantity int

var diceTypeCmd = &cobra.Command{
	Use:   "dice-type <sides>",
	Short: "Select the polyhedral die and its quantity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sides, err := strconv.Atoi(strings.TrimPrefix(args[0], "d"))
		if err != nil {
			return errors.InvalidArgumentf("dice type must be a number, got %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.SelectDiceType(ctx, &dice.SelectDiceTypeInput{
				DiceType: sides,
				Quantity: diceTypeQuantity,
			})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output, func(w io.Writer) {
				fmt.Fprintf(w, "Selected %dd%d\n", output.Quantity, output.DiceType)
			})
		})
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history [roller]",
	Short: "Clear roll history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &dice.ClearHistoryInput{}
		if len(args) == 1 {
			input.Roller = args[0]
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.ClearHistory(ctx, input)
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output, func(w io.Writer) {
				fmt.Fprintf(w, "Cleared %d rolls\n", output.RollsCleared)
			})
		})
	},
}

var clearAllConfirm bool

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Delete every saved roller setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if !clearAllConfirm {
				fmt.Fprintln(cmd.ErrOrStderr(), a.localizer.T("clearAll.confirm"))
				return errors.FailedPrecondition("clearing all storage requires --yes")
			}
			output, err := a.service.ClearAllStorage(ctx, &dice.ClearAllStorageInput{Confirm: true})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output, func(w io.Writer) {
				fmt.Fprintln(w, a.localizer.T("clearAll.done", len(output.KeysRemoved)))
			})
		})
	},
}

var checkStorageFix bool

var checkStorageCmd = &cobra.Command{
	Use:   "check-storage",
	Short: "Validate saved roller settings",
	Long: `Run every saved roller setting through decoding, migration and
validation without loading it. With --fix, corrupted entries are deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			// hydration reports what it would have discarded; the check
			// below says it again per key
			a.notices.Drain()

			output, err := a.service.CheckStorage(ctx, &dice.CheckStorageInput{Fix: checkStorageFix})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Reports, func(w io.Writer) {
				for _, r := range output.Reports {
					line := fmt.Sprintf("%-12s %-22s %s", r.Roller, r.Key, r.Status)
					if r.Error != "" {
						line += ": " + r.Error
					}
					if r.Removed {
						line += " (removed)"
					}
					fmt.Fprintln(w, line)
				}
			})
		}, readOnlyRollers())
	},
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show app preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.GetPreferences(ctx, &dice.GetPreferencesInput{})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Preferences, nil)
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change theme, mode or language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := parsePreferences(args)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			output, err := a.service.SetPreferences(ctx, &dice.SetPreferencesInput{Patch: patch})
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).print(output.Preferences, nil)
		})
	},
}

func parsePreferences(pairs []string) (preferences.Patch, error) {
	var patch preferences.Patch
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return patch, errors.InvalidArgumentf("expected key=value, got %q", pair)
		}
		switch key {
		case preferences.KeyTheme:
			theme := preferences.Theme(value)
			patch.Theme = &theme
		case preferences.KeyMode:
			mode := preferences.Mode(value)
			patch.Mode = &mode
		case preferences.KeyLanguage:
			lang := value
			patch.Language = &lang
		default:
			return patch, errors.InvalidArgumentf("unknown preference %q", key)
		}
	}
	return patch, nil
}

func init() {
	configCmd.AddCommand(configSetCmd)

	quickButtonAddCmd.Flags().StringVar(&quickButtonType, "type", string(entities.QuickButtonInstantRoll), "instantRoll or setAmount")
	quickButtonUpdateCmd.Flags().IntVar(&quickButtonAmount, "amount", 0, "new dice amount")
	quickButtonUpdateCmd.Flags().StringVar(&quickButtonNewType, "type", "", "new type: instantRoll or setAmount")
	quickButtonCmd.AddCommand(quickButtonAddCmd, quickButtonUpdateCmd, quickButtonRemoveCmd)

	coinTypeCmd.AddCommand(coinTypeAddCmd, coinTypeRemoveCmd, coinTypeSelectCmd)

	diceTypeCmd.Flags().IntVar(&diceTypeQuantity, "quantity", 0, "dice quantity, 0 keeps the remembered one")

	clearAllCmd.Flags().BoolVar(&clearAllConfirm, "yes", false, "confirm deleting all saved settings")

	checkStorageCmd.Flags().BoolVar(&checkStorageFix, "fix", false, "delete corrupted entries")

	prefsCmd.AddCommand(prefsSetCmd)
}
