package board

// The nRF52840 DK exposes its console through the on-board SEGGER J-Link
// (VID 1366); the probe also handles mass erase via nrfjprog.
var nrf52840dkSpec = ToolSpec{
	Name:         "nrf52840dk",
	Arch:         "cortex-m4",
	Baud:         115200,
	UARTVendorID: "1366",
	EraseArgv:    []string{"nrfjprog", "--family", "NRF52", "--eraseall"},
	KernelDir:    "boards/nrf52840dk",
	LoaderBoard:  "nrf52840dk",
}

func init() {
	Register("nrf52840dk", func(opts Options) (Board, error) {
		return NewToolBoard(nrf52840dkSpec, opts), nil
	})
}
