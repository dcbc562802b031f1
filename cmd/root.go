package cmd

import (
	"fmt"
	"os"
	"strings"

	"voiture/internal/cmd/root"
	"voiture/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "voiture",
	Short: "Accelerate a car and print its speed",
	Run:   root.Run,
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("name", "Toyota", "Name of the vehicle")
	rootCmd.PersistentFlags().Int("speed", 0, "Initial speed in km/h")
	rootCmd.PersistentFlags().Int("times", 1, "Number of accelerations")
	rootCmd.PersistentFlags().Bool("tui", false, "Run the interactive dashboard")
	rootCmd.PersistentFlags().String("serial-port", "", "Mirror status lines to this serial port")
	rootCmd.PersistentFlags().Int("baud", 9600, "Baud rate for the serial mirror")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("name", rootCmd.PersistentFlags().Lookup("name"))
	viper.BindPFlag("speed", rootCmd.PersistentFlags().Lookup("speed"))
	viper.BindPFlag("times", rootCmd.PersistentFlags().Lookup("times"))
	viper.BindPFlag("tui", rootCmd.PersistentFlags().Lookup("tui"))
	viper.BindPFlag("serial-port", rootCmd.PersistentFlags().Lookup("serial-port"))
	viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("baud"))

	// VOITURE_NAME, VOITURE_SERIAL_PORT, ...
	viper.SetEnvPrefix("voiture")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("debug", false)
	viper.SetDefault("name", "Toyota")
	viper.SetDefault("speed", 0)
	viper.SetDefault("times", 1)
	viper.SetDefault("tui", false)
	viper.SetDefault("serial-port", "")
	viper.SetDefault("baud", 9600)
}

func initLogger() {
	log.InitLogger(viper.GetBool("debug"))
}

func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
