package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tooncodec/toon"
)

var (
	encodeIndent    int
	encodeDelimiter string
	encodeCollapse  bool

	encodeCmd = &cobra.Command{
		Use:   "encode FILE",
		Short: "Encode a JSON file as TOON text",
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

			var decoded any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return userError(fmt.Errorf("parsing %s as JSON: %w", args[0], err))
			}

			v, err := toon.Normalize(decoded, 0)
			if err != nil {
				return internalError(fmt.Errorf("normalizing value: %w", err))
			}
			if debug {
				logrus.Debug("normalized value:")
				repr.Println(v)
			}

			opts := toon.DefaultEncodeOptions()
			opts.Delimiter = toon.Delimiter(delimiterFlag(encodeDelimiter))
			if encodeIndent > 0 {
				opts.Indent = encodeIndent
			}
			if encodeCollapse {
				opts.KeyCollapsing = toon.CollapseSafe
			}

			out, err := toon.Encode(v, opts)
			if err != nil {
				return userError(fmt.Errorf("encoding %s: %w", args[0], err))
			}
			fmt.Println(out)
			return nil
		},
	}
)

func delimiterFlag(s string) byte {
	switch s {
	case "tab", "\t":
		return byte(toon.DelimTab)
	case "pipe", "|":
		return byte(toon.DelimPipe)
	default:
		return byte(toon.DelimComma)
	}
}

func init() {
	encodeCmd.Flags().IntVar(&encodeIndent, "indent", 2, "number of spaces per indent level")
	encodeCmd.Flags().StringVar(&encodeDelimiter, "delimiter", "comma", "inline/tabular delimiter: comma, tab, or pipe")
	encodeCmd.Flags().BoolVar(&encodeCollapse, "collapse-keys", false, "fuse single-key object chains into dotted keys")
}
