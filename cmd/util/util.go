package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from environment variables.
// The format of the environment variables is FREEFOCUS_<flag> with
// dashes replaced by underscores (e.g. FREEFOCUS_TICK_INTERVAL=10ms).
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("freefocus")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// InitLogger configures the process-wide logger. Verbose mode adds
// debug output.
func InitLogger(verbose bool) {
	var levels []logger.Level
	if verbose {
		levels = logger.AllLevels()
	} else {
		levels = []logger.Level{logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel}
	}
	logger.Init(logger.Config{Levels: levels})
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.ISerializer, error) {
	switch viper.GetString("serializer") {
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	case "cbor":
		return serializer.NewCBORSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}
}

// GetServerConfig reads the daemon's control channel configuration from viper
func GetServerConfig() common.ServerConfig {
	return common.ServerConfig{
		Endpoint:      viper.GetString("endpoint"),
		ReadChunkSize: viper.GetInt("read-chunk"),
		TickInterval:  viper.GetDuration("tick-interval"),
		Verbose:       viper.GetBool("verbose"),
	}
}

// GetClientConfig reads client configuration from viper
func GetClientConfig(retryOnRefused bool) common.ClientConfig {
	return common.ClientConfig{
		Endpoint:       viper.GetString("endpoint"),
		ReadChunkSize:  viper.GetInt("read-chunk"),
		TickInterval:   viper.GetDuration("tick-interval"),
		RetryOnRefused: retryOnRefused,
	}
}

// GetCallTimeout returns the response timeout for one-shot commands
func GetCallTimeout() time.Duration {
	return viper.GetDuration("timeout")
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
