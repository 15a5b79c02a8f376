package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/howeyc/gopass"
	"github.com/spf13/cobra"

	"smartbartender/internal/crypto"
	"smartbartender/internal/domain"
)

var password string

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts in the credential store",
	}
	cmd.PersistentFlags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.AddCommand(userAddCmd(), userResetCmd(), userCheckCmd(), userListCmd())
	return cmd
}

func userAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [username]",
		Short: "Register a new account",
		Args:  usernameArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.Username(args[0])
			pw, err := readPassword(cmd, name)
			if err != nil {
				return err
			}
			if err := wire.Credentials.RegisterUser(cmd.Context(), name, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", name)
			return nil
		},
	}
}

func userResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [username]",
		Short: "Overwrite an account's password",
		Args:  usernameArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.Username(args[0])
			pw, err := readPassword(cmd, name)
			if err != nil {
				return err
			}
			if err := wire.Credentials.ResetPassword(cmd.Context(), name, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s\n", name)
			return nil
		},
	}
}

func userCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [username]",
		Short: "Test a username/password pair",
		Args:  usernameArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.Username(args[0])
			pw, err := readPassword(cmd, name)
			if err != nil {
				return err
			}
			if err := wire.Credentials.Check(cmd.Context(), name, pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func userListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print registered usernames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := wire.Credentials.Usernames(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

// usernameArg accepts exactly one non-empty username.
func usernameArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if strings.TrimSpace(args[0]) == "" {
		return errEmptyUsername
	}
	return nil
}

var errEmptyUsername = errors.New("username must not be empty")

// readPassword returns --password if set, otherwise prompts on the command's
// input.
func readPassword(cmd *cobra.Command, name domain.Username) (string, error) {
	if cmd.Flags().Changed("password") {
		return password, nil
	}
	pb, err := gopass.GetPasswdPrompt(fmt.Sprintf("[%s] Password: ", name), true, promptInput(cmd.InOrStdin()), cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(pb)
	return string(pb), nil
}

// pipeReader lets gopass read from a non-file input. Its Fd is never a
// terminal, so gopass reads a line without switching to raw mode.
type pipeReader struct{ io.Reader }

func (pipeReader) Fd() uintptr { return ^uintptr(0) }

func promptInput(r io.Reader) gopass.FdReader {
	if f, ok := r.(gopass.FdReader); ok {
		return f
	}
	return pipeReader{r}
}
