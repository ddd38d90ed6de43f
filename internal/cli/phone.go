package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func (a *app) newPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Add, remove, edit, or find a contact's phone numbers",
	}
	cmd.AddCommand(a.newPhoneAddCmd())
	cmd.AddCommand(a.newPhoneRemoveCmd())
	cmd.AddCommand(a.newPhoneEditCmd())
	cmd.AddCommand(a.newPhoneFindCmd())
	return cmd
}

// updateRecord runs fn against the named record inside a.update.
func (a *app) updateRecord(name string, fn func(rec *types.Record) (bool, error)) error {
	return a.update(func(d *types.Directory) (bool, error) {
		rec, err := findRecord(d, name)
		if err != nil {
			return false, err
		}
		return fn(rec)
	})
}

func (a *app) newPhoneAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Add a phone number to a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateRecord(args[0], func(rec *types.Record) (bool, error) {
				before := len(rec.Phones())
				if err := rec.AddPhone(args[1]); err != nil {
					return false, fmt.Errorf("phone %q: %w", args[1], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), rec)
				return len(rec.Phones()) != before, nil
			})
		},
	}
}

func (a *app) newPhoneRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <phone>",
		Short: "Remove a phone number from a contact",
		Long:  "Remove deletes the phone from the contact. Removing a phone the contact\ndoes not have is not an error.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateRecord(args[0], func(rec *types.Record) (bool, error) {
				before := len(rec.Phones())
				rec.RemovePhone(args[1])
				fmt.Fprintln(cmd.OutOrStdout(), rec)
				return len(rec.Phones()) != before, nil
			})
		},
	}
}

func (a *app) newPhoneEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name> <old-phone> <new-phone>",
		Short: "Replace one of a contact's phone numbers",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateRecord(args[0], func(rec *types.Record) (bool, error) {
				if err := rec.EditPhone(args[1], args[2]); err != nil {
					return false, fmt.Errorf("edit phone %q: %w", args[1], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), rec)
				return true, nil
			})
		},
	}
}

func (a *app) newPhoneFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name> <phone>",
		Short: "Check whether a contact has a phone number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.view(func(_ *sqlite.Backend, d *types.Directory) error {
				rec, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				p, ok := rec.FindPhone(args[1])
				if a.flags.jsonMode {
					return printJSON(out, map[string]any{"name": rec.Name().Value(), "phone": args[1], "found": ok})
				}
				if !ok {
					fmt.Fprintf(out, "%s: not found\n", rec.Name())
					return nil
				}
				fmt.Fprintf(out, "%s: %s\n", rec.Name(), p)
				return nil
			})
		},
	}
}
