package pipeline

import (
	"screenpass/internal/aidetect"
	"screenpass/internal/inject"
)

// Config carries every threshold and cap of the per-unit passes.
type Config struct {
	Detectors aidetect.Config

	TicMax        int
	ObjectMax     int
	ExitMax       int
	CooldownWords int

	EllipsesPerLine int
	EllipsisCap     int
	StutterCap      int

	FrictionProbability float64
	FrictionMax         int
	SensoryTarget       float64
	SensoryMax          int
	SomaticMax          int

	GenericResponseCap int
}

func DefaultConfig() Config {
	return Config{
		Detectors:     aidetect.DefaultConfig(),
		TicMax:        2,
		ObjectMax:     3,
		ExitMax:       1,
		CooldownWords: 150,

		EllipsesPerLine: 2,
		EllipsisCap:     10,
		StutterCap:      3,

		// Friction reads as a gimmick at any real rate.
		FrictionProbability: 0.05,
		FrictionMax:         3,
		SensoryTarget:       8,
		SensoryMax:          inject.MaxSensory,
		SomaticMax:          5,

		GenericResponseCap: 10,
	}
}
