package biometrics

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
)

func TestGenerateZeroRandomZeroTime(t *testing.T) {
	gen := NewGenerator(func() float64 { return 0 })

	sample := gen.Generate(0)

	if sample.Timestamp != 0 {
		t.Errorf("Timestamp = %d, want 0", sample.Timestamp)
	}
	if sample.HeartRate != 55 {
		t.Errorf("HeartRate = %d, want 55", sample.HeartRate)
	}
	if sample.OxygenSaturation != 96 {
		t.Errorf("OxygenSaturation = %d, want 96", sample.OxygenSaturation)
	}
	if sample.LactateThreshold != 3.8 {
		t.Errorf("LactateThreshold = %v, want 3.8", sample.LactateThreshold)
	}
	if sample.Motion.X != 0 || sample.Motion.Y != 0.5 || sample.Motion.Z != 0 {
		t.Errorf("Motion = %+v, want {0 0.5 0}", sample.Motion)
	}
	if len(sample.EMG) != EMGChannels {
		t.Fatalf("len(EMG) = %d, want %d", len(sample.EMG), EMGChannels)
	}
	// sin(0) = 0, so every channel is just the jitter term (0-0.5)*0.2.
	for i, v := range sample.EMG {
		if math.Abs(v-(-0.1)) > 1e-12 {
			t.Errorf("EMG[%d] = %v, want -0.1", i, v)
		}
	}
	if sample.EEG != (EEG{}) {
		t.Errorf("EEG = %+v, want all zero bands", sample.EEG)
	}
}

func TestGenerateDeterministicWithSeededSource(t *testing.T) {
	timestamps := []float64{0, 0.1, 1.5, 12.34, 1000}

	for _, ts := range timestamps {
		a := NewGenerator(rand.New(rand.NewSource(42)).Float64).Generate(ts)
		b := NewGenerator(rand.New(rand.NewSource(42)).Float64).Generate(ts)

		aJSON, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		bJSON, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(aJSON) != string(bJSON) {
			t.Errorf("ts=%v: samples differ:\n%s\n%s", ts, aJSON, bJSON)
		}
	}
}

func TestGenerateRangeInvariants(t *testing.T) {
	gen := NewGenerator(nil)

	for i := 0; i < 5000; i++ {
		ts := float64(i) * 0.1
		sample := gen.Generate(ts)

		if sample.OxygenSaturation < 96 || sample.OxygenSaturation > 99 {
			t.Fatalf("ts=%v: OxygenSaturation = %d, want [96, 99]", ts, sample.OxygenSaturation)
		}
		if sample.HeartRate < 25 || sample.HeartRate > 105 {
			t.Fatalf("ts=%v: HeartRate = %d, want [25, 105]", ts, sample.HeartRate)
		}
		if sample.LactateThreshold < 3.8 || sample.LactateThreshold > 4.4 {
			t.Fatalf("ts=%v: LactateThreshold = %v, want [3.8, 4.4]", ts, sample.LactateThreshold)
		}
		if len(sample.EMG) != EMGChannels {
			t.Fatalf("ts=%v: len(EMG) = %d, want %d", ts, len(sample.EMG), EMGChannels)
		}
		for _, band := range []float64{sample.EEG.Alpha, sample.EEG.Beta, sample.EEG.Gamma, sample.EEG.Theta, sample.EEG.Delta} {
			if band < 0 || band > 1 {
				t.Fatalf("ts=%v: EEG band = %v, want [0, 1]", ts, band)
			}
		}
	}
}

func TestSampleJSONShape(t *testing.T) {
	gen := NewGenerator(func() float64 { return 0.5 })

	data, err := json.Marshal(gen.Generate(1.0))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"timestamp", "heartRate", "oxygenSaturation", "lactateThreshold", "motion", "emg", "eeg"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level field %q", key)
		}
	}
	if len(decoded) != 7 {
		t.Errorf("top-level field count = %d, want 7", len(decoded))
	}

	motion, ok := decoded["motion"].(map[string]interface{})
	if !ok {
		t.Fatal("motion is not an object")
	}
	for _, axis := range []string{"x", "y", "z"} {
		if _, ok := motion[axis]; !ok {
			t.Errorf("motion missing axis %q", axis)
		}
	}

	eeg, ok := decoded["eeg"].(map[string]interface{})
	if !ok {
		t.Fatal("eeg is not an object")
	}
	for _, band := range []string{"alpha", "beta", "gamma", "theta", "delta"} {
		if _, ok := eeg[band]; !ok {
			t.Errorf("eeg missing band %q", band)
		}
	}

	emg, ok := decoded["emg"].([]interface{})
	if !ok {
		t.Fatal("emg is not an array")
	}
	if len(emg) != EMGChannels {
		t.Errorf("len(emg) = %d, want %d", len(emg), EMGChannels)
	}
}
