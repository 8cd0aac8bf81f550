package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tickwire/buffer"
	"github.com/arloliu/tickwire/compress"
	"github.com/arloliu/tickwire/format"
	"github.com/arloliu/tickwire/packet"
)

func newFrameCmd() *cobra.Command {
	var (
		id          uint16
		compression string
		text        bool
	)

	cmd := &cobra.Command{
		Use:   "frame <payload>",
		Short: "Wrap a payload in a packet frame",
		Long: `Wraps a hex payload (or plain text with --text) in a packet frame and
prints the frame as hex together with the compression ratio. The compression
defaults to packet.compression from the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := []byte(args[0])
			if !text {
				var err error
				if payload, err = hex.DecodeString(args[0]); err != nil {
					return fmt.Errorf("parse hex: %w", err)
				}
			}

			ct := cfg.Compression()
			if compression != "" {
				var ok bool
				if ct, ok = format.ParseCompression(compression); !ok {
					return fmt.Errorf("%w: %q", packet.ErrUnknownCompression, compression)
				}
			}

			pool := cfg.WriterPool()
			w := pool.Acquire()
			defer pool.Release(w)

			if err := packet.Encode(w, id, payload, ct); err != nil {
				return err
			}

			stats, err := compress.Measure(ct, payload)
			if err != nil {
				return err
			}

			// decode back so the output proves the frame is well formed
			_, decoded, err := packet.Decode(buffer.NewReader(w.Bytes()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frame:       %s\n", hex.EncodeToString(w.Bytes()))
			fmt.Fprintf(out, "compression: %s\n", ct)
			fmt.Fprintf(out, "payload:     %d bytes, frame %d bytes, ratio %.2f\n",
				len(decoded), w.Length(), stats.Ratio())

			return nil
		},
	}

	cmd.Flags().Uint16Var(&id, "id", 1, "packet id")
	cmd.Flags().StringVar(&compression, "compression", "", "none, zstd, s2 or lz4")
	cmd.Flags().BoolVar(&text, "text", false, "treat the payload as text instead of hex")

	return cmd
}
