// Package biometrics implements the synthetic multimodal sample generator
// for the Vital Stream backend.
//
// A Sample is fully determined by the elapsed-time input plus the random
// draws made at that instant; the generator carries no state between calls.
package biometrics
