package pricing

import (
	"errors"
	"testing"

	"cctv-service/internal/domain/catalog"
	xerrors "cctv-service/internal/pkg/errors"
)

func fixedInput(count int) Input {
	return Input{
		CameraCount: count,
		Camera:      catalog.CameraSpec{Resolution: "8MP", BasePrice: 2500},
		Location:    catalog.Location{Name: "Casablanca", DifficultyMultiplier: 1.0, TravelFee: 300},
		Difficulty:  catalog.Difficulty{Level: "medium", CostMultiplier: 1.3, HoursRequired: 8},
	}
}

func TestCalculate_WorkedExample(t *testing.T) {
	// 8 x 2500 = 20000, x1.3 difficulty = 26000, x1.0 location = 26000,
	// + 8h x 250 labor = 2000, + 300 travel = 28300.
	b, err := Calculate(fixedInput(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.BaseCost != 20000 {
		t.Errorf("base cost = %v, want 20000", b.BaseCost)
	}
	if b.CameraCost != 26000 {
		t.Errorf("camera cost = %v, want 26000", b.CameraCost)
	}
	if b.LaborCost != 2000 {
		t.Errorf("labor cost = %v, want 2000", b.LaborCost)
	}
	if b.TravelFee != 300 {
		t.Errorf("travel fee = %v, want 300", b.TravelFee)
	}
	if b.TotalPrice != 28300 {
		t.Errorf("total = %v, want 28300", b.TotalPrice)
	}
}

func TestCalculate_StepOrder(t *testing.T) {
	// The location multiplier applies after the difficulty multiplier, so a
	// 2x location must double the multiplied camera cost but leave labor
	// and travel alone.
	in := fixedInput(2)
	in.Location.DifficultyMultiplier = 2.0

	b, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 x 2500 x 1.3 x 2.0 = 13000
	if b.CameraCost != 13000 {
		t.Errorf("camera cost = %v, want 13000", b.CameraCost)
	}
	if b.LaborCost != 2000 {
		t.Errorf("labor cost = %v, want 2000", b.LaborCost)
	}
	if b.TotalPrice != 15300 {
		t.Errorf("total = %v, want 15300", b.TotalPrice)
	}
}

func TestCalculate_MonotonicInCameraCount(t *testing.T) {
	prev := 0.0
	for count := 1; count <= 20; count++ {
		b, err := Calculate(fixedInput(count))
		if err != nil {
			t.Fatalf("count %d: unexpected error: %v", count, err)
		}
		if b.TotalPrice <= prev {
			t.Fatalf("count %d: total %v not greater than previous %v", count, b.TotalPrice, prev)
		}
		prev = b.TotalPrice
	}
}

func TestCalculate_CameraCountRange(t *testing.T) {
	for _, count := range []int{0, -1, 101} {
		_, err := Calculate(fixedInput(count))
		if !errors.Is(err, xerrors.ErrInvalidInput) {
			t.Errorf("count %d: got %v, want ErrInvalidInput", count, err)
		}
	}

	for _, count := range []int{1, 100} {
		if _, err := Calculate(fixedInput(count)); err != nil {
			t.Errorf("count %d: unexpected error: %v", count, err)
		}
	}
}

func TestCalculate_NegativeParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"negative base price", func(in *Input) { in.Camera.BasePrice = -1 }},
		{"negative cost multiplier", func(in *Input) { in.Difficulty.CostMultiplier = -0.5 }},
		{"negative location multiplier", func(in *Input) { in.Location.DifficultyMultiplier = -1 }},
		{"negative hours", func(in *Input) { in.Difficulty.HoursRequired = -2 }},
		{"negative travel fee", func(in *Input) { in.Location.TravelFee = -100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixedInput(4)
			tt.mutate(&in)
			if _, err := Calculate(in); !errors.Is(err, xerrors.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCalculate_Rounding(t *testing.T) {
	in := Input{
		CameraCount: 3,
		Camera:      catalog.CameraSpec{BasePrice: 1099.99},
		Location:    catalog.Location{DifficultyMultiplier: 1.15, TravelFee: 150.555},
		Difficulty:  catalog.Difficulty{CostMultiplier: 1.33, HoursRequired: 5.5},
	}

	b, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, v := range map[string]float64{
		"base":   b.BaseCost,
		"camera": b.CameraCost,
		"labor":  b.LaborCost,
		"travel": b.TravelFee,
		"total":  b.TotalPrice,
	} {
		cents := v * 100
		if cents != float64(int64(cents+0.5)) && cents != float64(int64(cents)) {
			t.Errorf("%s = %v not rounded to 2 decimals", name, v)
		}
	}
}
