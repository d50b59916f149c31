package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type PasswordResetter interface {
	ResetPassword() (string, error)
}

type PasswordSetter interface {
	SetPassword(password string) error
}

// RunResetPasswordCommand stores a temporary password that must be changed
// on the next login and prints it once.
func RunResetPasswordCommand(auth PasswordResetter, out io.Writer) error {
	temporaryPassword, err := auth.ResetPassword()
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "✅ Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "The password must be changed on next login.")
	return nil
}

// RunSetPasswordCommand asks for the new password twice and stores it.
func RunSetPasswordCommand(auth PasswordSetter, prompt PasswordReader, out io.Writer) error {
	password, err := prompt.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is required")
	}

	confirmation, err := prompt.ReadPassword("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirmation {
		return errors.New("passwords do not match")
	}

	if err := auth.SetPassword(password); err != nil {
		return err
	}
	fmt.Fprintln(out, "✅ Password updated")
	return nil
}
