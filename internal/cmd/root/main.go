package root

import (
	"fmt"
	"io"

	"voiture/internal/displayer"
	"voiture/internal/models"
	"voiture/internal/serial"
	"voiture/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func Run(cmd *cobra.Command, args []string) {
	vehicle := models.NewVehicle(viper.GetString("name"), viper.GetInt("speed"))

	var mirrors []io.Writer
	if port := viper.GetString("serial-port"); port != "" {
		m, err := serial.Open(port, viper.GetInt("baud"))
		if err != nil {
			log.Fatal("failed to open serial mirror", zap.Error(err))
		}
		defer m.Close()
		mirrors = append(mirrors, m)
	}

	if viper.GetBool("tui") {
		d := displayer.New(vehicle, mirrors...)
		if err := d.Run(); err != nil {
			fmt.Printf("error: %v\n", err)
		}
		return
	}

	vehicle.SetOutput(io.MultiWriter(append([]io.Writer{cmd.OutOrStdout()}, mirrors...)...))
	if err := drive(vehicle, viper.GetInt("times")); err != nil {
		log.Error("failed to drive", zap.Error(err))
	}
}

// drive accelerates the vehicle the requested number of times.
func drive(vehicle *models.Vehicle, times int) error {
	if times < 0 {
		return fmt.Errorf("invalid number of accelerations: %d", times)
	}
	for i := 0; i < times; i++ {
		vehicle.Accelerate()
	}
	log.Debug("Drive finished", zap.String("vehicle", vehicle.Name), zap.Int("speed", vehicle.Speed))
	return nil
}
