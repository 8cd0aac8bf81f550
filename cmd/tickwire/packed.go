package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire/packed"
)

func newPackedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packed",
		Short: "Encode or decode packed whole numbers",
	}
	cmd.PersistentFlags().Bool("signed", false, "zigzag-fold the value as a signed integer")

	cmd.AddCommand(&cobra.Command{
		Use:   "encode [--signed] [--] <value>",
		Short: "Print the packed encoding of a number as hex",
		Long: `Print the packed encoding of a number as hex.

Negative values must follow "--" so they are not parsed as flags:

  tickwire packed encode --signed -- -1`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, _ := cmd.Flags().GetBool("signed")

			var out []byte
			if signed {
				v, err := strconv.ParseInt(args[0], 0, 64)
				if err != nil {
					return fmt.Errorf("parse value: %w", err)
				}
				out = packed.AppendInt(nil, v)
			} else {
				v, err := strconv.ParseUint(args[0], 0, 64)
				if err != nil {
					return fmt.Errorf("parse value: %w", err)
				}
				out = packed.AppendWhole(nil, v)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", hex.EncodeToString(out), len(out))

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex packed whole number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, _ := cmd.Flags().GetBool("signed")

			data, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("parse hex: %w", err)
			}

			if signed {
				v, n, err := packed.Int(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d (%d bytes)\n", v, n)

				return nil
			}

			v, n, err := packed.Whole(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d (%d bytes)\n", v, n)

			return nil
		},
	})

	return cmd
}
