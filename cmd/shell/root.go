package shell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaytlang-hopkins/freefocus/cmd/util"
	"github.com/jaytlang-hopkins/freefocus/ipc/client"
)

const (
	promptOK     = "[*] > "
	promptFailed = "[!] > "

	msgNotRunning = "Could not connect to the FreeFocus service. Is it running?"
	msgLostConn   = "Lost connection to the FreeFocus service -- is the headset still running?"
)

var (
	// ShellCmd represents the interactive operator console
	ShellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive console to the FreeFocus daemon",
		Long:  `Open an interactive console to the FreeFocus daemon. Each line is sent as a command; the prompt reflects whether the previous command succeeded. Type help for the list of commands, exit to stop the daemon, or press Ctrl-D to leave the console.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
		RunE: run,
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)
}

func run(_ *cobra.Command, _ []string) error {
	util.InitLogger(false)

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	cli := client.NewClient(util.GetClientConfig(false), s)
	defer cli.Close()

	if err := cli.WaitConnected(0); err != nil {
		fmt.Println(msgNotRunning)
		os.Exit(1)
	}

	scanner := bufio.NewScanner(os.Stdin)
	succeeded := true
	for {
		if succeeded {
			fmt.Print(promptOK)
		} else {
			fmt.Print(promptFailed)
		}

		if !scanner.Scan() {
			// Ctrl-D leaves the console without touching the daemon.
			fmt.Println()
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			succeeded = true
			continue
		}

		resp, err := cli.Call(fields[0], fields[1:], 0)
		if err != nil {
			if errors.Is(err, client.ErrConnectionLost) {
				fmt.Println(msgLostConn)
				os.Exit(1)
			}
			return err
		}

		if resp.Message != "" {
			fmt.Println(resp.Message)
		}
		succeeded = resp.Succeeded

		if fields[0] == "exit" && resp.Succeeded {
			return nil
		}
	}
}
