package ctl

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaytlang-hopkins/freefocus/cmd/util"
)

var (
	showCmd = &cobra.Command{
		Use:   "show [stimulus]",
		Short: "Change the stimulus the headset presents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call("show", args, util.GetCallTimeout())
		},
	}
	recordCmd = &cobra.Command{
		Use:   "record [duration]",
		Short: "Record gaze data for a duration, e.g. 30s or 2m",
		Long:  `Record gaze data for a duration, e.g. 30s or 2m. This command blocks until the recording finishes and prints the directory holding the captured data.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The response only arrives once the capture is done, so
			// never time out on it.
			return call("record", args, 0)
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Print the daemon's internal counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call("stats", nil, util.GetCallTimeout())
		},
	}
	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop the FreeFocus daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call("exit", nil, util.GetCallTimeout())
		},
	}
	sendCmd = &cobra.Command{
		Use:   "send [command] [args...]",
		Short: "Send a raw command to the daemon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(args[0], args[1:], util.GetCallTimeout())
		},
	}
)

// call sends one command, prints the daemon's answer and converts an
// unsuccessful response into a non-zero exit status.
func call(name string, args []string, timeout time.Duration) error {
	defer ctlClient.Close()

	resp, err := ctlClient.Call(name, args, timeout)
	if err != nil {
		return err
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	if !resp.Succeeded {
		return fmt.Errorf("command %q failed", name)
	}
	return nil
}
