package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire/packet"
)

func newUnframeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unframe <hex>",
		Short: "Decode every packet frame in a hex datagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("parse hex: %w", err)
			}

			pool := cfg.ReaderPool()
			r := pool.Acquire(data)
			defer pool.Release(r)

			out := cmd.OutOrStdout()
			for r.Remaining() > 0 {
				id, payload, err := packet.Decode(r)
				if err != nil {
					if r.Err() != nil {
						return err
					}
					fmt.Fprintf(out, "id %d: dropped: %v\n", id, err)

					continue
				}
				fmt.Fprintf(out, "id %d: %s (%d bytes)\n", id, hex.EncodeToString(payload), len(payload))
			}

			return nil
		},
	}
}
