package cmd

import (
	"errors"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"github.com/spf13/cobra"
)

// errMissingShareID is returned when 'share encode property' has no id.
var errMissingShareID = errors.New("a property id is required, e.g. 'share encode property 3'")

// shareCmd groups the share code commands.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Move settings and properties between devices with share codes",
	Long: `Share codes are compressed, URL-safe strings that carry either the
settings (weights and work postcode), one property or every property.

Examples:
  # Share your weights
  nestscore share encode settings

  # Share one property
  nestscore share encode property 3

  # Import a code on another device
  nestscore share import eJyrVkrLz...`,
}

// shareEncodeCmd prints a share code.
var shareEncodeCmd = &cobra.Command{
	Use:       "encode <settings|property <id>|properties>",
	Short:     "Print a share code",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{string(schema.ShareSettings), string(schema.ShareProperty), string(schema.ShareProperties)},
	PreRunE:   sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		kind := schema.ShareType(args[0])
		var id int64
		if kind == schema.ShareProperty {
			if len(args) != 2 {
				contract.LogFatal("Cannot encode share code", errMissingShareID)
			}
			var err error
			if id, err = parseID(args[1]); err != nil {
				contract.LogFatal("Cannot encode share code", err)
			}
		}
		if err := core.ExecuteShareEncode(rootCtx, cfg, storeManager, kind, id); err != nil {
			contract.LogFatal("Cannot encode share code", err)
		}
	},
}

// shareDecodeCmd prints the payload of a share code.
var shareDecodeCmd = &cobra.Command{
	Use:     "decode <code>",
	Short:   "Print the JSON payload of a share code",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShareDecode(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot decode share code", err)
		}
	},
}

// shareImportCmd applies a share code.
var shareImportCmd = &cobra.Command{
	Use:     "import <code>",
	Short:   "Create properties or apply settings from a share code",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteShareImport(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot import share code", err)
		}
	},
}
