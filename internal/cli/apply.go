package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/concurrentcube"
)

var applyCmd = &cobra.Command{
	Use:   "apply [moves...]",
	Short: "Apply a move sequence to a new cube",
	Long: `Build a solved cube of --size, apply the moves one after another and
print the result.

Examples:
  cubectl apply 1:3 0:0 4:1 3:2 5:0 2:3 --size 4
  cubectl apply "0:0, 2:1" --raw
  cubectl apply --scramble 25 --seed 7`,
	RunE: runApply,
}

var (
	applyRaw      bool
	applyScramble int
	applySeed     int64
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyRaw, "raw", false, "Print the snapshot digit string instead of the net")
	applyCmd.Flags().IntVar(&applyScramble, "scramble", 0, "Prepend this many random moves")
	applyCmd.Flags().Int64Var(&applySeed, "seed", 0, "Random seed for --scramble (default: current time)")
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := concurrentcube.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, m := range moves {
		if m.Layer >= cfg.Size {
			return fmt.Errorf("%w: layer %d out of range for size %d", concurrentcube.ErrInvalidNotation, m.Layer, cfg.Size)
		}
	}

	if applyScramble > 0 {
		seed := applySeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		scramble := concurrentcube.RandomMoves(rand.New(rand.NewSource(seed)), cfg.Size, applyScramble)
		logger.Debug("scramble generated", "moves", concurrentcube.FormatMoves(scramble))
		moves = append(scramble, moves...)
	}

	cube := concurrentcube.New(cfg.Size, concurrentcube.WithLogger(logger))
	if err := cube.Apply(cmd.Context(), moves...); err != nil {
		return err
	}

	snap, err := cube.Show(cmd.Context())
	if err != nil {
		return err
	}

	if applyRaw {
		fmt.Println(snap.String())
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d×%d×%d cube after %d moves", cfg.Size, cfg.Size, cfg.Size, len(moves))))
	fmt.Print(renderNet(snap))
	if snap.IsSolved() {
		fmt.Println(okStyle.Render("solved"))
	}
	return nil
}
