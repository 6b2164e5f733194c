//go:build rp2040

// Command uart-telemetry streams TMP102 readings over UART0 on an
// rp2040 board, rendered by the format engine without touching the
// FPU-less target's soft-float paths: the sensor's raw Q8.4 words go
// straight through %{8.4}k.
package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"format-go/drivers/tmp102"
	"format-go/format"
)

const interval = 2 * time.Second

func main() {
	println("[telemetry] boot …")

	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		println("[telemetry] FAIL: i2c configure:", err.Error())
		return
	}

	sensor := tmp102.New(i2c)
	if err := sensor.Configure(); err != nil {
		println("[telemetry] FAIL: tmp102 configure:", err.Error())
		return
	}

	seq := 0
	for {
		var s tmp102.Sample
		if err := sensor.Read(&s); err != nil {
			_, _ = format.Format(uart, "seq=%06d temp=ERR %s\r\n", seq, err.Error())
		} else {
			_, _ = format.Format(uart,
				"seq=%06d temp=%7.2{8.4}k C raw=%!#4hX\r\n",
				seq, s.Fixed(), uint16(s.Raw))
		}
		seq++
		time.Sleep(interval)
	}
}
