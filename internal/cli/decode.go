package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tooncodec/toon"
)

var (
	decodeNonStrict   bool
	decodeExpandPaths bool

	decodeCmd = &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode a TOON file and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if len(args) != 1 {
				_ = cmd.Help()
				return userError(errors.New("need to specify argument <FILE>"))
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return userError(fmt.Errorf("reading %s: %w", args[0], err))
			}

			opts := toon.DefaultDecodeOptions()
			opts.Strict = !decodeNonStrict
			if decodeExpandPaths {
				opts.ExpandPaths = toon.ExpandSafe
			}

			v, err := toon.Decode(string(raw), opts)
			if err != nil {
				var synErr *toon.SyntaxError
				if errors.As(err, &synErr) {
					return userError(err)
				}
				return internalError(err)
			}
			if debug {
				logrus.Debug("decoded value:")
				repr.Println(v)
			}

			out, err := v.MarshalJSON()
			if err != nil {
				return internalError(fmt.Errorf("rendering JSON: %w", err))
			}
			fmt.Println(string(out))
			return nil
		},
	}
)

func init() {
	decodeCmd.Flags().BoolVar(&decodeNonStrict, "non-strict", false, "tolerate tabs, ragged indentation, and length mismatches")
	decodeCmd.Flags().BoolVar(&decodeExpandPaths, "expand-paths", false, "expand collapsed dotted keys back into nested objects")
}
