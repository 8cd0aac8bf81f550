package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire"
	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
	"github.com/arloliu/tickwire/registry"
)

func newRotationCmd() *cobra.Command {
	var (
		axis     []float64
		from, to float64
		forced   bool
	)

	cmd := &cobra.Command{
		Use:   "rotation",
		Short: "Show the delta encoding of a rotation change",
		Long: `Rotates --from degrees to --to degrees around --axis and writes the change
with the registry's rotation delta codec, using delta.rotation_precision and
delta.rotation_epsilon from the configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(axis) != 3 {
				return fmt.Errorf("--axis needs 3 components, got %d", len(axis))
			}
			reg := tickwire.NewRegistry(cfg.RegistryOptions()...)

			prev := delta.RotationFromAxisAngle(axis[0], axis[1], axis[2], from)
			next := delta.RotationFromAxisAngle(axis[0], axis[1], axis[2], to)

			opts := delta.None
			if forced {
				opts = delta.FullSerialize
			}

			out := cmd.OutOrStdout()
			w := buffer.NewWriter()
			if !registry.WriteDelta(reg, w, prev, next, opts) {
				fmt.Fprintln(out, "unchanged: nothing written")
				return nil
			}

			r := buffer.NewReader(w.Bytes())
			got := registry.ReadDelta(reg, r, prev)
			if err := r.Err(); err != nil {
				return err
			}

			fmt.Fprintf(out, "precision: %g deg\n", reg.RotationPrecision())
			fmt.Fprintf(out, "bytes:     %s (%d)\n", hex.EncodeToString(w.Bytes()), w.Length())
			fmt.Fprintf(out, "error:     %.6f deg\n", got.AngleTo(next))

			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&axis, "axis", []float64{0, 1, 0}, "rotation axis x,y,z")
	cmd.Flags().Float64Var(&from, "from", 0, "previous angle in degrees")
	cmd.Flags().Float64Var(&to, "to", 0, "new angle in degrees")
	cmd.Flags().BoolVar(&forced, "forced", false, "write even when unchanged")

	return cmd
}
