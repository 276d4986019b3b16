package cli

import (
	"fmt"
	"runtime"

	"github.com/livecap/livecap/internal/capture"
	"github.com/spf13/cobra"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List capture backends and their input devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			recorders := capture.DefaultRecorders(runtime.GOOS)
			if len(recorders) == 0 {
				return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
			}

			for _, recorder := range recorders {
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", recorder.Name())
				if !recorder.Available() {
					fmt.Fprintln(cmd.OutOrStdout(), "not available on PATH")
					fmt.Fprintln(cmd.OutOrStdout())
					continue
				}

				out, err := recorder.ListDevices(cmd.Context())
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "failed to list devices: %v\n\n", err)
					continue
				}

				if out == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "no output")
					fmt.Fprintln(cmd.OutOrStdout())
					continue
				}

				fmt.Fprintln(cmd.OutOrStdout(), out)
				fmt.Fprintln(cmd.OutOrStdout())
			}

			return nil
		},
	}
}
