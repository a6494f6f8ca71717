package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transdom/config"
	"transdom/logger"
	"transdom/schemas"
)

func sendTestEmailCmd() *cobra.Command {
	var to, name string

	cmd := &cobra.Command{
		Use:   "send-test-email",
		Short: "Send a welcome e-mail synchronously to check SMTP settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			log := logger.Init(cfg.LogLevel)

			notifier, err := newNotifier(cfg, log)
			if err != nil {
				return err
			}
			if !notifier.SendWelcome(cmd.Context(), schemas.Recipient{Email: to, FirstName: name}) {
				return fmt.Errorf("test e-mail was not delivered, see logs")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "test e-mail sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&name, "name", "Tester", "recipient first name")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
