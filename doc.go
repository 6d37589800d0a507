// Package rmstools holds the host-side tooling for the two-channel RMS voltage
// meter.
//
// The meter samples two ADC inputs, keeps a rolling RMS per channel and
// publishes ten readings over a BLE characteristic. Its LEDs are driven by a
// PWM duty cycle looked up in a sine table compiled into the firmware. This
// module produces that table and decodes the BLE payload on the bench.
//
// # Commands
//
//   - cmd/sinegen prints the firmware sine table as a C initializer
//     (or Go / CSV), optionally analysing its spectrum or rendering it to a
//     WAV file for a quick listen.
//   - cmd/hexdecode reads hex lines copied from a BLE inspector, or streamed
//     from the USB-serial bridge, and prints the ADC1 and ADC2 readings.
//
// # Quick Start
//
// Generate the default table:
//
//	line, err := rmstools.SineTableC(rmstools.DefaultTableSize)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(line) // static float sine[40] = {50.0, 57.82172, ...};
//
// Decode one record:
//
//	r, err := rmstools.DecodeHex("0x6401C80032000000FF0001000200030004000502")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.ADC1, r.ADC2) // [100 200 50 0 255] [1 2 3 4 5]
//
// # Record Layout
//
// Each reading occupies four hex characters after a two-character prefix.
// By default only the first two characters of each word are decoded, which
// is the low byte of the little-endian value and matches what the bench tool
// has always printed. [DecodeHexLE16] decodes the full word.
package rmstools
