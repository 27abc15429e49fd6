package serve

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaytlang-hopkins/freefocus/cmd/util"
	"github.com/jaytlang-hopkins/freefocus/engine"
	"github.com/jaytlang-hopkins/freefocus/hal"
)

var (
	// ServeCmd represents the serve command
	ServeCmd = &cobra.Command{
		Use:     "serve",
		Short:   "Start the FreeFocus daemon",
		Long:    `Start the FreeFocus daemon with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is FREEFOCUS_<flag> (e.g. FREEFOCUS_DEVICE=sim)`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
		RunE: run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "device"
	ServeCmd.PersistentFlags().String(key, "sim", util.WrapString("eye tracking device to drive, one of: "+joinDevices()))

	key = "sample-rate"
	ServeCmd.PersistentFlags().Int(key, 120, util.WrapString("gaze samples per second produced by the device"))
}

// run starts the daemon and blocks until a client sends exit or the
// process receives an interrupt.
func run(cmd *cobra.Command, _ []string) error {
	serverConfig := util.GetServerConfig()
	util.InitLogger(serverConfig.Verbose)

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	eng, err := engine.New(
		engine.Config{
			Device:       viper.GetString("device"),
			SampleRateHz: viper.GetInt("sample-rate"),
			TickInterval: viper.GetDuration("tick-interval"),
		},
		serverConfig,
		s,
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return eng.Run(ctx)
}

func joinDevices() string {
	out := ""
	for i, name := range hal.DeviceNames() {
		if i > 0 {
			out += ", "
		}
		out += name
	}
	return out
}
