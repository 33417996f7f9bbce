// Package analysis measures rendered signals: level, zero crossings and the
// dominant frequency. The level functions are allocation-free and are used on
// the audio thread by the meter node; the spectral functions allocate and are
// meant for tests and offline tooling.
package analysis
