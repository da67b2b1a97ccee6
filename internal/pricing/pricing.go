// internal/pricing/pricing.go
package pricing

import (
	"fmt"

	"cctv-service/internal/domain/catalog"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

// LaborRate is the fixed hourly labor rate in MAD.
const LaborRate = 250.0

const (
	MinCameraCount = 1
	MaxCameraCount = 100
)

type Input struct {
	CameraCount int
	Camera      catalog.CameraSpec
	Location    catalog.Location
	Difficulty  catalog.Difficulty
}

// Breakdown is the itemized quote. All currency figures are rounded to
// 2 decimal places here, at the output boundary, never mid-calculation.
type Breakdown struct {
	BaseCost             float64 `json:"base_cost"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
	LocationMultiplier   float64 `json:"location_multiplier"`
	CameraCost           float64 `json:"camera_cost"`
	LaborCost            float64 `json:"labor_cost"`
	TravelFee            float64 `json:"travel_fee"`
	TotalPrice           float64 `json:"total_price"`
}

// Calculate prices an installation. The step order is fixed: base camera
// cost, then the difficulty multiplier, then the location multiplier, then
// labor and travel are added on top. Pure function, no side effects.
func Calculate(in Input) (*Breakdown, error) {
	if in.CameraCount < MinCameraCount || in.CameraCount > MaxCameraCount {
		return nil, fmt.Errorf("%w: camera_count must be between %d and %d",
			xerrors.ErrInvalidInput, MinCameraCount, MaxCameraCount)
	}
	if in.Camera.BasePrice < 0 || in.Difficulty.CostMultiplier < 0 ||
		in.Location.DifficultyMultiplier < 0 || in.Difficulty.HoursRequired < 0 ||
		in.Location.TravelFee < 0 {
		return nil, fmt.Errorf("%w: negative pricing parameters", xerrors.ErrInvalidInput)
	}

	baseCost := in.Camera.BasePrice * float64(in.CameraCount)
	afterDifficulty := baseCost * in.Difficulty.CostMultiplier
	afterLocation := afterDifficulty * in.Location.DifficultyMultiplier
	laborCost := in.Difficulty.HoursRequired * LaborRate
	total := afterLocation + laborCost + in.Location.TravelFee

	return &Breakdown{
		BaseCost:             round2(baseCost),
		DifficultyMultiplier: in.Difficulty.CostMultiplier,
		LocationMultiplier:   in.Location.DifficultyMultiplier,
		CameraCost:           round2(afterLocation),
		LaborCost:            round2(laborCost),
		TravelFee:            round2(in.Location.TravelFee),
		TotalPrice:           round2(total),
	}, nil
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
