package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaytlang-hopkins/freefocus/cmd/ctl"
	"github.com/jaytlang-hopkins/freefocus/cmd/serve"
	"github.com/jaytlang-hopkins/freefocus/cmd/shell"
	"github.com/jaytlang-hopkins/freefocus/cmd/util"
	"github.com/jaytlang-hopkins/freefocus/ipc/common"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "freefocus",
		Short: "portable eye tracking service",
		Long: fmt.Sprintf(`FreeFocus (v%s)

An eye tracking service for portable headsets. The daemon drives the
headset and accepts exactly one operator connection at a time over a
loopback control channel.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of FreeFocus",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("FreeFocus v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(shell.ShellCmd)
	RootCmd.AddCommand(ctl.ControlCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, cbor)"))
	key = "endpoint"
	RootCmd.PersistentFlags().String(key, common.DefaultEndpoint, util.WrapString("loopback address of the control channel"))
	key = "read-chunk"
	RootCmd.PersistentFlags().Int(key, common.DefaultReadChunkSize, util.WrapString("bytes read from the socket per tick"))
	key = "tick-interval"
	RootCmd.PersistentFlags().Duration(key, common.DefaultTickInterval, util.WrapString("pause between cooperative ticks"))
	key = "verbose"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("enable debug logging"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
