package cli

import (
	"fmt"
	"restwell/internal/fitbit"
	"time"

	"github.com/spf13/cobra"
)

func newAuthURLCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-url",
		Short: "Print a Fitbit authorization URL",
		Long: `Issue a single-use OAuth state and print the Fitbit consent URL.

After approving access, Fitbit redirects to the configured redirect URI with
code and state query parameters. Pass both to "exchange" if the server is not
running to receive the redirect.`,
		Args: cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			state, err := fitbit.GenerateState()
			if err != nil {
				return err
			}
			if err := rt.app.Storage.SaveOAuthState(cmd.Context(), state); err != nil {
				return fmt.Errorf("failed to save state: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rt.app.Fitbit.AuthURL(state))
			fmt.Fprintf(out, "State: %s\n", state)
			fmt.Fprintf(out, "Valid for: %s\n", fitbit.StateMaxAge)
			return nil
		}),
	}
}

func newExchangeCommand(rt *runtime) *cobra.Command {
	var code, state string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for Fitbit tokens",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if state != "" {
				if err := rt.app.Storage.ConsumeOAuthState(ctx, state, fitbit.StateMaxAge); err != nil {
					return err
				}
			}

			grant, err := rt.app.Fitbit.ExchangeCode(ctx, code)
			if err != nil {
				return fmt.Errorf("code exchange failed: %w", err)
			}

			pair, err := rt.app.Tokens.Connect(ctx, grant)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Connected. Access token expires at %s\n",
				pair.ExpiresAtTime().UTC().Format(time.RFC3339))
			return nil
		}),
	}

	cmd.Flags().StringVar(&code, "code", "", "authorization code from the redirect")
	cmd.Flags().StringVar(&state, "state", "", "state value from the redirect")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Fitbit connection and last sync",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			status, err := rt.app.Tokens.Status(ctx)
			if err != nil {
				return err
			}

			switch {
			case !status.Connected:
				fmt.Fprintln(out, "Fitbit: not connected")
			case status.AccessValid:
				fmt.Fprintf(out, "Fitbit: connected, access token valid for %s\n",
					time.Duration(status.ExpiresInSeconds)*time.Second)
			default:
				fmt.Fprintln(out, "Fitbit: connected, access token expired (refreshed on next sync)")
			}

			lastSync, err := rt.app.Storage.GetLastSync(ctx)
			if err != nil {
				return err
			}
			if lastSync.IsZero() {
				fmt.Fprintln(out, "Last sync: never")
			} else {
				fmt.Fprintf(out, "Last sync: %s\n", lastSync.UTC().Format(time.RFC3339))
			}
			return nil
		}),
	}
}

func newDisconnectCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the stored Fitbit tokens",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Tokens.Disconnect(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Disconnected.")
			return nil
		}),
	}
}
