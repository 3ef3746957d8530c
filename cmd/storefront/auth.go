package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sommystore/storefront/app/services"
)

func authCmd() *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Sign in and out, locally or against the backend",
	}

	auth.AddCommand(
		authLoginCmd(), authRegisterCmd(), authLogoutCmd(),
		authAdminLoginCmd(), authAdminLogoutCmd(),
		authWhoamiCmd(), authResetCmd(),
	)
	return auth
}

func printValidation(err error) bool {
	var ve *services.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	for field, msg := range ve.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
	return true
}

func authLoginCmd() *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an email or phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			identity, err := a.Auth.SignIn(cmd.Context(), services.SignInInput{
				Identifier: identifier,
				Password:   password,
			})
			if err != nil {
				if printValidation(err) {
					return errors.New("validation failed")
				}
				return err
			}
			fmt.Fprintf(os.Stdout, "signed in as %s\n", identity.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "email or phone")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("identifier") //nolint:errcheck
	cmd.MarkFlagRequired("password")   //nolint:errcheck
	return cmd
}

func authRegisterCmd() *cobra.Command {
	var input services.SignUpInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a shopper account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			input.PasswordConfirmation = input.Password
			identity, err := a.Auth.SignUp(cmd.Context(), input)
			if err != nil {
				if printValidation(err) {
					return errors.New("validation failed")
				}
				return err
			}
			fmt.Fprintf(os.Stdout, "welcome, %s\n", identity.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&input.Password, "password", "", "password")
	cmd.MarkFlagRequired("name")     //nolint:errcheck
	cmd.MarkFlagRequired("email")    //nolint:errcheck
	cmd.MarkFlagRequired("password") //nolint:errcheck
	return cmd
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the shopper session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}
			return a.Auth.SignOut()
		},
	}
}

func authAdminLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "admin-login",
		Short: "Sign in as an admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			identity, err := a.Auth.AdminSignIn(cmd.Context(), services.AdminInput{
				Email:    email,
				Password: password,
			})
			if err != nil {
				if printValidation(err) {
					return errors.New("validation failed")
				}
				return err
			}
			fmt.Fprintf(os.Stdout, "admin signed in as %s\n", identity.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")    //nolint:errcheck
	cmd.MarkFlagRequired("password") //nolint:errcheck
	return cmd
}

func authAdminLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-logout",
		Short: "Destroy the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}
			return a.Auth.AdminSignOut()
		},
	}
}

func authWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the cached identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			if user := a.Session.CurrentUser(); user != nil {
				fmt.Fprintf(os.Stdout, "user:  %s\n", user.DisplayName())
			}
			if admin := a.Session.CurrentAdmin(); admin != nil {
				fmt.Fprintf(os.Stdout, "admin: %s\n", admin.DisplayName())
			}
			if a.Session.Active() == nil {
				fmt.Fprintln(os.Stdout, "not signed in")
			}
			return nil
		},
	}
}

func authResetCmd() *cobra.Command {
	var identifier, token, password string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Request or complete a local password reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			if token != "" {
				if err := a.Auth.ResetPassword(token, password); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "password updated")
				return nil
			}

			issued, err := a.Auth.RequestReset(identifier)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "reset token: %s\n", issued)
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "email or phone to reset")
	cmd.Flags().StringVar(&token, "token", "", "reset token (completes the reset)")
	cmd.Flags().StringVar(&password, "password", "", "new password (with --token)")
	return cmd
}
