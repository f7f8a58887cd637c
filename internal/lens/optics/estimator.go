package optics

import (
	"math"

	"lensfit-service/internal/lens/model"
)

// DefaultAllowance: припуск на обработку (мм), если не задан явно.
const DefaultAllowance = 2.0

// SphericalEquivalent = SPH + CYL/2.
func SphericalEquivalent(sph, cyl float64) float64 { return sph + cyl/2 }

// Estimate: упрощённая модель стрелки прогиба линзы.
// Index должен быть > 1: это гарантирует MaterialCatalog, здесь не проверяется.
func Estimate(in model.EstimateInput) model.Estimate {
	allowance := DefaultAllowance
	if in.Allowance != nil {
		allowance = *in.Allowance
	}

	se := math.Abs(SphericalEquivalent(in.Sphere, in.Cylinder))
	framePD := in.A + in.DBL
	decentration := math.Abs(framePD/2 - in.MonoPD)
	span := math.Max(in.A, in.B)

	blankDia := span + 2*decentration + 2*allowance
	r := blankDia / 2
	deltaT := (r * r * se) / (2000 * (in.Index - 1))

	return model.Estimate{
		Edge:         in.MinCT + deltaT,
		DeltaT:       deltaT,
		BlankDia:     blankDia,
		Decentration: decentration,
		ED:           span + 2*decentration,
	}
}
