package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ember-os/hwci/internal/serialcon"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List attached serial devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serialcon.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("no serial devices attached")
			return nil
		}
		for _, p := range ports {
			if p.IsUSB {
				fmt.Printf("%-16s usb vid=%s pid=%s serial=%s\n", p.Name, p.VID, p.PID, p.SerialNumber)
			} else {
				fmt.Printf("%-16s\n", p.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
