package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/delta"
	"github.com/arloliu/tickwire/format"
)

func newDeltaCmd() *cobra.Command {
	var (
		prev, next float64
		single     bool
		forced     bool
	)

	cmd := &cobra.Command{
		Use:   "delta",
		Short: "Show the delta encoding of a float change",
		Long: `Writes the change from --prev to --next with the float delta codec and
prints the selected tier, the wire bytes and the value a receiver reconstructs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := delta.None
			if forced {
				opts = delta.FullSerialize
			}

			w := buffer.NewWriter()
			var written bool
			if single {
				written = delta.WriteFloat(w, float32(prev), float32(next), opts)
			} else {
				written = delta.WriteFloat(w, prev, next, opts)
			}

			out := cmd.OutOrStdout()
			if !written {
				fmt.Fprintln(out, "unchanged: nothing written")
				return nil
			}

			data := w.Bytes()
			tier := format.Tier(data[0]).Width()
			fmt.Fprintf(out, "tier:    %s\n", tier)
			fmt.Fprintf(out, "bytes:   %s (%d)\n", hex.EncodeToString(data), len(data))

			r := buffer.NewReader(data)
			if single {
				fmt.Fprintf(out, "decoded: %v\n", delta.ReadFloat(r, float32(prev)))
			} else {
				fmt.Fprintf(out, "decoded: %v\n", delta.ReadFloat(r, prev))
			}

			return r.Err()
		},
	}

	cmd.Flags().Float64Var(&prev, "prev", 0, "previous value")
	cmd.Flags().Float64Var(&next, "next", 0, "new value")
	cmd.Flags().BoolVar(&single, "float32", false, "encode as float32")
	cmd.Flags().BoolVar(&forced, "forced", false, "write even when unchanged")

	return cmd
}
