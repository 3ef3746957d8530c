package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func subscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Join the mailing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app()
			if err != nil {
				return err
			}

			if err := a.Subscribers.Subscribe(cmd.Context(), args[0]); err != nil {
				if printValidation(err) {
					return errors.New("validation failed")
				}
				return err
			}
			fmt.Fprintln(os.Stdout, "subscribed")
			return nil
		},
	}
}
