package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// parseID parses a single positional property id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid property id '%s'", arg)
	}
	return id, nil
}

// propertyFromFlags builds a new property from the add flags.
func propertyFromFlags(flags *pflag.FlagSet) schema.Property {
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	price, _ := flags.GetInt("price")
	return schema.Property{
		Name:        str("name"),
		Address:     str("address"),
		Postcode:    str("postcode"),
		Price:       price,
		Agent:       str("agent"),
		ViewingDate: str("viewing-date"),
		ListingURL:  str("url"),
		Notes:       str("notes"),
	}
}

// updateFromFlags collects only the flags that were set on the command line.
func updateFromFlags(flags *pflag.FlagSet) core.PropertyUpdate {
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	var update core.PropertyUpdate
	update.Name = str("name")
	update.Address = str("address")
	update.Postcode = str("postcode")
	update.Agent = str("agent")
	update.ViewingDate = str("viewing-date")
	update.ListingURL = str("url")
	update.Notes = str("notes")
	if flags.Changed("price") {
		price, _ := flags.GetInt("price")
		update.Price = &price
	}
	return update
}

// propertyCmd groups the commands that manage saved properties.
var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Add, score and manage the properties you are evaluating",
	Long: `Manage the properties you have viewed.

Each property carries answers to the question catalogue. Answers are scored
per category, and categories are combined into a weighted overall score.

Examples:
  # Add a property and look up its coordinates
  nestscore property add --name "Oak Road" --postcode "LS1 1AA" --price 1250 --geocode yes

  # Answer a few questions
  nestscore property answer 1 area_safety=safe parking=permit fibre_available=yes

  # See the ranked list
  nestscore property list --detail`,
}

// propertyAddCmd creates a property.
var propertyAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a new property",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		p := propertyFromFlags(cmd.Flags())
		if err := core.ExecuteAdd(rootCtx, cfg, storeManager, newGeocoder(), p); err != nil {
			contract.LogFatal("Cannot add property", err)
		}
	},
}

// propertyListCmd ranks every property.
var propertyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Score and rank all properties",
	Long: `Score every property concurrently and print them ranked.

Use --sort to order by score, name, created or price, and --detail to add a
column per category.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteList(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list properties", err)
		}
	},
}

// propertyShowCmd prints the detail view of one property.
var propertyShowCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show the category breakdown of one property",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			contract.LogFatal("Cannot show property", err)
		}
		if err := core.ExecuteShow(rootCtx, cfg, storeManager, newGeocoder(), id); err != nil {
			contract.LogFatal("Cannot show property", err)
		}
	},
}

// propertyAnswerCmd stores answers for one property.
var propertyAnswerCmd = &cobra.Command{
	Use:   "answer <id> <question=value>...",
	Short: "Answer catalogue questions for a property",
	Long: `Store answers as question=value pairs.

Choice questions take one of their option values, boolean questions take
yes/no/true/false/1/0 and numeric questions take a number. An empty value
clears the answer. Run 'nestscore catalog' to see every question.

Examples:
  nestscore property answer 3 broadband_speed=ultrafast service_charge=1800 parking=`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			contract.LogFatal("Cannot save answers", err)
		}
		if err := core.ExecuteAnswer(rootCtx, cfg, storeManager, id, args[1:]); err != nil {
			contract.LogFatal("Cannot save answers", err)
		}
	},
}

// propertyUpdateCmd changes property fields.
var propertyUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change the fields of a property",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			contract.LogFatal("Cannot update property", err)
		}
		if err := core.ExecuteUpdate(rootCtx, cfg, storeManager, newGeocoder(), id, updateFromFlags(cmd.Flags())); err != nil {
			contract.LogFatal("Cannot update property", err)
		}
	},
}

// propertyDeleteCmd removes a property.
var propertyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a property",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			contract.LogFatal("Cannot delete property", err)
		}
		if err := core.ExecuteDelete(rootCtx, cfg, storeManager, id); err != nil {
			contract.LogFatal("Cannot delete property", err)
		}
	},
}

// propertyLocateCmd geocodes properties without coordinates.
var propertyLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Look up coordinates for properties that have none",
	Long: `Geocode every property that has a postcode but no coordinates.

Lookups run concurrently, bounded by --workers. Requires --geocode yes.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLocate(rootCtx, cfg, storeManager, newGeocoder()); err != nil {
			contract.LogFatal("Cannot locate properties", err)
		}
	},
}
