package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/orchestrators/dice"
	"github.com/KirkDiggler/talis/internal/rollers/coin"
	"github.com/KirkDiggler/talis/internal/rollers/d6"
	"github.com/KirkDiggler/talis/internal/rollers/daggerheart"
	"github.com/KirkDiggler/talis/internal/rollers/polyhedral"
	"github.com/KirkDiggler/talis/internal/rollers/shadowrun"
)

var (
	rollDiceType int
	rollButton   string
)

var rollCmd = &cobra.Command{
	Use:   "roll <roller> [count]",
	Short: "Roll on one roller",
	Long: `Roll dice or flip a coin. Examples:

  talis roll shadowrun 12
  talis roll d6 --button d6-2
  talis roll polyhedral 2 --dice-type 20
  talis roll daggerheart
  talis roll coin`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().IntVar(&rollDiceType, "dice-type", 0, "die size for the polyhedral roller")
	rollCmd.Flags().StringVar(&rollButton, "button", "", "press a quick button by id instead")
}

func runRoll(cmd *cobra.Command, args []string) error {
	input := &dice.RollInput{
		Roller:        args[0],
		DiceType:      rollDiceType,
		QuickButtonID: rollButton,
	}
	if len(args) == 2 {
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.InvalidArgumentf("count must be a number, got %q", args[1])
		}
		input.Count = count
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		output, err := a.service.Roll(ctx, input)
		if err != nil {
			return err
		}

		p := a.printer(cmd.OutOrStdout())
		p.notices(a.notices.Drain())
		return p.print(output.Result, func(w io.Writer) {
			if output.Result == nil {
				fmt.Fprintln(w, "Dice count updated")
				return
			}
			fmt.Fprintln(w, a.describeRoll(output.Result))
		})
	})
}

// describeRoll renders a roll result as one human line
func (a *app) describeRoll(result any) string {
	t := a.localizer.T
	switch r := result.(type) {
	case shadowrun.Result:
		parts := []string{formatFaces(r.Results), t("roll.shadowrun.hits", r.Hits)}
		switch {
		case r.IsCriticalGlitch:
			parts = append(parts, t("roll.shadowrun.criticalGlitch"))
		case r.IsGlitch:
			parts = append(parts, t("roll.shadowrun.glitch"))
		}
		return strings.Join(parts, "  ")
	case d6.Result:
		return formatFaces(r.Results) + "  " + t("roll.total", r.Total)
	case daggerheart.Result:
		line := fmt.Sprintf("hope %d  fear %d", r.Hope, r.Fear)
		if r.Modifier != 0 {
			line += fmt.Sprintf("  %+d", r.Modifier)
		}
		line += "  " + t("roll.total", r.Total)
		switch r.Highlight {
		case daggerheart.HighlightCritical:
			return line + "  " + t("roll.daggerheart.critical")
		case daggerheart.HighlightHope:
			return line + "  " + t("roll.daggerheart.hope")
		default:
			return line + "  " + t("roll.daggerheart.fear")
		}
	case polyhedral.Result:
		return fmt.Sprintf("%dd%d %s  %s", len(r.Results), r.DiceType, formatFaces(r.Results), t("roll.total", r.Total))
	case coin.Result:
		return r.Label
	default:
		return fmt.Sprintf("%v", result)
	}
}

func formatFaces(faces []int) string {
	parts := make([]string, len(faces))
	for i, f := range faces {
		parts[i] = strconv.Itoa(f)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
