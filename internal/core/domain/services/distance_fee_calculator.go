package services

import (
	"fmt"
	"math"

	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// FeePerKm is the flat tariff charged per kilometre.
var FeePerKm = decimal.NewFromInt(3)

// DistanceFeeCalculator prices the distance part of a delivery.
//
// The fee is FeePerKm times the distance, rounded half-to-even to two
// decimal places:
//
//	fee, _ := services.NewDistanceFeeCalculator().Calculate(3.1) // 9.30
type DistanceFeeCalculator struct{}

func NewDistanceFeeCalculator() DistanceFeeCalculator {
	return DistanceFeeCalculator{}
}

// Calculate rejects negative and non-finite distances.
func (DistanceFeeCalculator) Calculate(distanceInKm float64) (kernel.Money, error) {
	if math.IsNaN(distanceInKm) || math.IsInf(distanceInKm, 0) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%v km is not a finite number", distanceInKm))
	}
	if distanceInKm < 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%v km is negative", distanceInKm))
	}

	km := decimal.NewFromFloat(distanceInKm)
	return kernel.NewMoney(FeePerKm.Mul(km).RoundBank(kernel.MoneyScale))
}
