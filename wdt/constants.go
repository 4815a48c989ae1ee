package wdt

// WDTCSR bit masks per ATmega328P datasheet section 15.9.2.
const (
	// BitWDP0 is prescaler select bit 0 (bit 0)
	BitWDP0 uint8 = 1 << 0

	// BitWDP1 is prescaler select bit 1 (bit 1)
	BitWDP1 uint8 = 1 << 1

	// BitWDP2 is prescaler select bit 2 (bit 2)
	BitWDP2 uint8 = 1 << 2

	// BitWDE is the system reset enable bit (bit 3)
	BitWDE uint8 = 1 << 3

	// BitWDCE is the change enable bit opening the timed unlock window (bit 4)
	BitWDCE uint8 = 1 << 4

	// BitWDP3 is prescaler select bit 3 (bit 5, not adjacent to WDP2..WDP0)
	BitWDP3 uint8 = 1 << 5

	// BitWDIE is the timeout interrupt enable bit (bit 6)
	BitWDIE uint8 = 1 << 6

	// BitWDIF is the timeout interrupt flag (bit 7)
	BitWDIF uint8 = 1 << 7
)

// MCUSR bit masks per ATmega328P datasheet section 11.9.1.
const (
	// BitPORF is the power-on reset flag (bit 0)
	BitPORF uint8 = 1 << 0

	// BitEXTRF is the external reset flag (bit 1)
	BitEXTRF uint8 = 1 << 1

	// BitBORF is the brown-out reset flag (bit 2)
	BitBORF uint8 = 1 << 2

	// BitWDRF is the watchdog reset flag (bit 3)
	BitWDRF uint8 = 1 << 3
)

// UnlockBits is the value written to WDTCSR to open the timed unlock window.
// WDCE and WDE must be set in the same write; hardware then allows updates
// to WDE and the prescaler bits for UnlockWindowCycles clock cycles.
const UnlockBits = BitWDCE | BitWDE

// UnlockWindowCycles is the number of clock cycles the unlock window stays
// open after UnlockBits is written. The configuration write must land within
// this window, which is why the sequence runs with interrupts disabled.
const UnlockWindowCycles = 4

// PrescalerMask selects the four prescaler bits from a WDTCSR value.
const PrescalerMask = BitWDP3 | BitWDP2 | BitWDP1 | BitWDP0
