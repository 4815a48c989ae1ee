// Package wdt describes the AVR watchdog timer register layout.
//
// This package provides the bit positions, the discrete timeout step table,
// and the encoding/decoding functions for the watchdog control register
// (WDTCSR) per the ATmega328P datasheet section 15.9.2.
//
// # Register Overview
//
// The watchdog is controlled through two registers:
//
//	WDTCSR: [WDIF][WDIE][WDP3][WDCE][WDE][WDP2][WDP1][WDP0]
//	MCUSR:  [----][----][----][----][WDRF][BORF][EXTRF][PORF]
//
// Where:
//   - WDP3..WDP0 select the timeout prescaler (note WDP3 sits at bit 5,
//     not adjacent to WDP2..WDP0)
//   - WDE enables the system reset on timeout
//   - WDIE enables the timeout interrupt; hardware clears it after the
//     interrupt fires, so an unhandled second expiry falls through to reset
//   - WDCE opens the timed unlock window required to change WDE or the
//     prescaler bits
//   - WDRF in MCUSR records that the last reset was watchdog-triggered
//
// # Timed Unlock Sequence
//
// Changing WDE or the prescaler requires a two-stage write performed with
// interrupts disabled:
//
//	dev.WriteControl(wdt.UnlockBits)             // WDCE | WDE, opens the window
//	dev.WriteControl(wdt.ControlBits(step, mode)) // real configuration write
//
// Hardware keeps the window open for only UnlockWindowCycles clock cycles,
// after which WDCE is cleared and further writes are ignored.
//
// # Timeout Steps
//
// Use DeterminePeriod to quantize a requested duration in seconds to the
// supported step table:
//
//	step := wdt.DeterminePeriod(20) // Step8s
//	bits := wdt.ControlBits(step, wdt.InterruptAndResume)
//
// # Prescaler Table
//
// With VCC = 5.0V the nominal timeouts are:
//
//	WDP3 WDP2 WDP1 WDP0 | WDT cycles | Typical timeout
//	0    0    0    0    |   2K       | 16 ms
//	0    0    0    1    |   4K       | 32 ms
//	0    0    1    0    |   8K       | 64 ms
//	0    0    1    1    |  16K       | 0.125 s
//	0    1    0    0    |  32K       | 0.25 s
//	0    1    0    1    |  64K       | 0.5 s
//	0    1    1    0    |  128K      | 1.0 s
//	0    1    1    1    |  256K      | 2.0 s
//	1    0    0    0    |  512K      | 4.0 s
//	1    0    0    1    | 1024K      | 8.0 s
//
// # Reference
//
// ATmega328P datasheet, section 15.8 "Watchdog Timer" and 15.9 "Register
// Description".
package wdt
