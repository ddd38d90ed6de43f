package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [phone...]",
		Short: "Add a contact with optional phone numbers",
		Long: `Add creates a contact with the given phone numbers. Phones must be exactly
10 digits; repeated phones are stored once. Adding a name that already exists
leaves the existing contact unchanged.

Example:
  addressbook add John 1234567890 5555555555`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := types.NewRecord(args[0])
			if err != nil {
				return err
			}
			for _, p := range args[1:] {
				if err := rec.AddPhone(p); err != nil {
					return fmt.Errorf("phone %q: %w", p, err)
				}
			}

			out := cmd.OutOrStdout()
			return a.update(func(d *types.Directory) (bool, error) {
				if _, exists := d.Find(args[0]); exists {
					fmt.Fprintf(out, "Contact %s already exists; unchanged\n", args[0])
					return false, nil
				}
				d.AddRecord(rec)
				fmt.Fprintf(out, "Added %s\n", rec)
				return true, nil
			})
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show all contacts or a single contact",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.view(func(b *sqlite.Backend, d *types.Directory) error {
				if len(args) == 1 {
					rec, err := findRecord(d, args[0])
					if err != nil {
						return err
					}
					if a.flags.jsonMode {
						return printJSON(out, toContactJSON(b, rec))
					}
					_, err = fmt.Fprintln(out, rec)
					return err
				}

				if a.flags.jsonMode {
					contacts := make([]contactJSON, 0, d.Len())
					for _, rec := range d.Records() {
						contacts = append(contacts, toContactJSON(b, rec))
					}
					return printJSON(out, contacts)
				}
				_, err := fmt.Fprint(out, d)
				return err
			})
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(func(d *types.Directory) (bool, error) {
				if err := d.Delete(args[0]); err != nil {
					return false, fmt.Errorf("contact %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return true, nil
			})
		},
	}
}

func (a *app) newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <phone>",
		Short: "List the contacts that hold a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return a.view(func(b *sqlite.Backend, _ *types.Directory) error {
				names, err := b.LookupPhone(args[0])
				if errors.Is(err, types.ErrValidation) {
					return fmt.Errorf("phone %q: %w", args[0], err)
				}
				if err != nil {
					return systemError("lookup phone", err)
				}
				if a.flags.jsonMode {
					if names == nil {
						names = []string{}
					}
					return printJSON(out, names)
				}
				if len(names) == 0 {
					fmt.Fprintf(out, "No contact has phone %s\n", args[0])
					return nil
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			})
		},
	}
}
