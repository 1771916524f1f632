package commands

import (
	"github.com/spf13/cobra"

	"github.com/ember-os/hwci/internal/config"
	"github.com/ember-os/hwci/internal/monitor"
	"github.com/ember-os/hwci/internal/serialcon"
)

var (
	monitorPort string
	monitorBaud int
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream a board's serial console live",
	Long: `Monitor attaches to a UART and displays console output as it arrives.
Without --port the first attached serial device is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		device := monitorPort
		if device == "" {
			device = cfg.SerialPort
		}
		if device == "" {
			device, err = serialcon.FindPort("", "")
			if err != nil {
				return err
			}
		}

		baud := monitorBaud
		if baud == 0 {
			baud = cfg.BaudRate
		}
		if baud == 0 {
			baud = config.DefaultBaudRate
		}

		return monitor.Run(device, baud)
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorPort, "port", "", "serial device to attach to")
	monitorCmd.Flags().IntVar(&monitorBaud, "baud", 0, "baud rate")
	rootCmd.AddCommand(monitorCmd)
}
