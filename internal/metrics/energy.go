package metrics

import (
	"math"

	"github.com/san-kum/collisim/internal/dynamo"
)

// KineticEnergy reports Σ½|v|² (unit mass) of the latest frame.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(s *dynamo.Set, t float64) {
	k.current = kinetic(s)
}

func (k *KineticEnergy) Value() float64 { return k.current }
func (k *KineticEnergy) Reset()         { k.current = 0 }

func kinetic(s *dynamo.Set) float64 {
	e := 0.0
	for _, v := range s.Vel {
		e += 0.5 * v.Dot(v)
	}
	return e
}

// EnergyLoss tracks the largest relative drop of kinetic energy below the
// first observed frame. Inelastic contacts and damped bounces only remove
// energy, so the value should grow towards 1 without input.
type EnergyLoss struct {
	name    string
	initial float64
	maxLoss float64
	samples int
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s *dynamo.Set, t float64) {
	energy := kinetic(s)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		loss := (e.initial - energy) / math.Abs(e.initial)
		e.maxLoss = math.Max(e.maxLoss, loss)
	}
}

func (e *EnergyLoss) Value() float64 { return e.maxLoss }

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.maxLoss = 0
	e.samples = 0
}
