package biometrics

import (
	"math"
	"math/rand"
)

// EMGChannels is the number of surface EMG channels in every sample.
const EMGChannels = 8

// Motion holds one accelerometer reading per axis.
type Motion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// EEG holds the five named band powers. All values are non-negative.
type EEG struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Delta float64 `json:"delta"`
}

// Sample is one telemetry record. It is created on each tick, serialized,
// transmitted and discarded; nothing retains it.
type Sample struct {
	Timestamp        int64     `json:"timestamp"` // milliseconds since the session epoch
	HeartRate        int       `json:"heartRate"`
	OxygenSaturation int       `json:"oxygenSaturation"`
	LactateThreshold float64   `json:"lactateThreshold"`
	Motion           Motion    `json:"motion"`
	EMG              []float64 `json:"emg"`
	EEG              EEG       `json:"eeg"`
}

// Generator produces synthetic biometric samples from an elapsed-time input
// and a uniform [0,1) random source.
type Generator struct {
	random func() float64
}

// NewGenerator creates a generator using the supplied random source.
// A nil source falls back to math/rand.
func NewGenerator(random func() float64) *Generator {
	if random == nil {
		random = rand.Float64
	}
	return &Generator{random: random}
}

// Generate produces one sample for the given elapsed time in seconds.
// It is total over its input domain and has no side effect beyond
// consuming randomness.
func (g *Generator) Generate(ts float64) Sample {
	heartRate := 55 + int(math.Round(25*math.Sin(ts/0.5))) + int(math.Round(g.random()*5))
	oxygen := 96 + int(math.Round(g.random()*3))
	lactate := 3.8 + g.random()*0.6

	emg := make([]float64, EMGChannels)
	for i := range emg {
		period := 0.08 + float64(i)*0.01
		emg[i] = 0.5*math.Sin(ts/period) + (g.random()-0.5)*0.2
	}

	return Sample{
		Timestamp:        int64(math.Round(ts * 1000)),
		HeartRate:        heartRate,
		OxygenSaturation: oxygen,
		LactateThreshold: lactate,
		Motion: Motion{
			X: math.Sin(ts/0.4) * 0.5,
			Y: math.Cos(ts/0.5) * 0.5,
			Z: math.Sin(ts/0.7) * 0.5,
		},
		EMG: emg,
		EEG: EEG{
			Alpha: math.Abs(math.Sin(ts / 0.9)),
			Beta:  math.Abs(math.Sin(ts / 0.7)),
			Gamma: math.Abs(math.Sin(ts / 0.5)),
			Theta: math.Abs(math.Sin(ts / 1.2)),
			Delta: math.Abs(math.Sin(ts / 1.5)),
		},
	}
}
