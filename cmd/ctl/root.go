package ctl

import (
	"github.com/spf13/cobra"

	"github.com/jaytlang-hopkins/freefocus/cmd/util"
	"github.com/jaytlang-hopkins/freefocus/ipc/client"
)

var (
	ctlClient *client.Client

	// ControlCommands represents the one-shot client command group
	ControlCommands = &cobra.Command{
		Use:               "ctl",
		Short:             "Send one-shot commands to the FreeFocus daemon",
		PersistentPreRunE: setupControlClient,
		SilenceUsage:      true,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Response timeout for short commands; record overrides this
	ControlCommands.PersistentFlags().Duration("timeout", 0, util.WrapString("how long to wait for the daemon's response (0 waits forever)"))

	// Add subcommands
	ControlCommands.AddCommand(showCmd)
	ControlCommands.AddCommand(recordCmd)
	ControlCommands.AddCommand(statsCmd)
	ControlCommands.AddCommand(stopCmd)
	ControlCommands.AddCommand(sendCmd)
}

// setupControlClient connects to the daemon before any subcommand runs
func setupControlClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	util.InitLogger(false)

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	ctlClient = client.NewClient(util.GetClientConfig(false), s)
	return ctlClient.WaitConnected(0)
}
