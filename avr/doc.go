// Package avr implements watchdog.Device on AVR hardware registers.
//
// The implementation targets ATmega328P-class MCUs compiled with TinyGo
// and is gated behind the avrwdt build tag, so host builds and tests
// never touch it:
//
//	tinygo build -tags avrwdt -target arduino ./...
//
// On the host, use the sim package instead.
package avr
