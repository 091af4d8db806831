package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/spf13/cobra"
)

func (a *App) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier, err := a.identifier()
			if err != nil {
				return err
			}

			secret, err := a.promptNewSecret("Master secret")
			if err != nil {
				return err
			}
			defer clear(secret)
			if len(secret) == 0 {
				return ErrEmptySecret
			}

			session, err := a.newSession(a.cfg, a.log)
			if err != nil {
				return err
			}
			if err = session.AuthService.Register(cmd.Context(), identifier, secret); err != nil {
				return fmt.Errorf("register: %w", err)
			}

			fmt.Fprintf(a.out, "Account %s registered.\n", identifier)
			return nil
		},
	}
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVault(cmd.Context(), func(vault service.ClientVaultService) error {
				items, err := vault.List()
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(a.out, "The vault is empty.")
					return nil
				}

				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tUSERNAME")
				for _, item := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Title, item.Username)
				}
				return w.Flush()
			})
		},
	}
}

type itemFlags struct {
	title    string
	username string
	notes    string
	password bool
}

func (f *itemFlags) bind(cmd *cobra.Command, passwordUsage string) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "item title")
	cmd.Flags().StringVar(&f.username, "username", "", "login name stored with the item")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVarP(&f.password, "password", "p", false, passwordUsage)
}

func (a *App) addCommand() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := models.VaultItem{
				Title:    flags.title,
				Username: flags.username,
				Notes:    flags.notes,
			}

			return a.withVault(cmd.Context(), func(vault service.ClientVaultService) error {
				if flags.password {
					password, err := a.promptNewSecret("Item password")
					if err != nil {
						return err
					}
					item.Password = string(password)
					clear(password)
				}

				added, err := vault.Add(item)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Added %s.\n", added.ID)
				return nil
			})
		},
	}
	flags.bind(cmd, "prompt for the item password")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags()
			if !changed.Changed("title") && !changed.Changed("username") && !changed.Changed("notes") && !flags.password {
				return ErrNothingToEdit
			}

			return a.withVault(cmd.Context(), func(vault service.ClientVaultService) error {
				item, err := vault.Get(args[0])
				if err != nil {
					return err
				}

				if changed.Changed("title") {
					item.Title = flags.title
				}
				if changed.Changed("username") {
					item.Username = flags.username
				}
				if changed.Changed("notes") {
					item.Notes = flags.notes
				}
				if flags.password {
					password, err := a.promptNewSecret("New item password")
					if err != nil {
						return err
					}
					item.Password = string(password)
					clear(password)
				}

				if err = vault.Update(item); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Updated %s.\n", item.ID)
				return nil
			})
		},
	}
	flags.bind(cmd, "prompt for a new item password")
	return cmd
}

func (a *App) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVault(cmd.Context(), func(vault service.ClientVaultService) error {
				if err := vault.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted %s.\n", args[0])
				return nil
			})
		},
	}
}

func (a *App) getCommand() *cobra.Command {
	var copyPassword bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withVault(cmd.Context(), func(vault service.ClientVaultService) error {
				item, err := vault.Get(args[0])
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
				fmt.Fprintf(w, "ID:\t%s\n", item.ID)
				fmt.Fprintf(w, "Title:\t%s\n", item.Title)
				fmt.Fprintf(w, "Username:\t%s\n", item.Username)
				if !copyPassword {
					fmt.Fprintf(w, "Password:\t%s\n", item.Password)
				}
				fmt.Fprintf(w, "Notes:\t%s\n", item.Notes)
				if err = w.Flush(); err != nil {
					return err
				}

				if copyPassword {
					if err = a.copyText(item.Password); err != nil {
						return fmt.Errorf("copy to clipboard: %w", err)
					}
					fmt.Fprintln(a.out, "Password copied to clipboard.")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&copyPassword, "copy", false, "copy the password to the clipboard instead of printing it")
	return cmd
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(a.out, a.build)
		},
	}
}
