// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pricing

import (
	"errors"
	"math"
)

// ErrInvalidTokenCount is returned when a cost calculation is asked for a
// token count that is not a finite, non-negative number.
var ErrInvalidTokenCount = errors.New("pricing: token count must be a finite non-negative number")

// maxBillableTokens caps a single calculation. Anything above this is a
// measurement bug, not a real savings figure.
const maxBillableTokens = 1e9

// Attribution is the result of a cost calculation.
type Attribution struct {
	ModelID       string  `json:"model_id"`
	ClientID      string  `json:"client_id"`
	PerMillionUSD float64 `json:"price_per_million_tokens"`
	CostUSD       float64 `json:"cost_usd"`
	Currency      string  `json:"currency"`
}

// Calculator converts token-savings counts into dollar estimates using the
// catalog and a detector.
type Calculator struct {
	detector *Detector
	// pinnedModel, when non-empty, applies to every calculation that does
	// not carry its own per-call override. It outranks all detection
	// sources, including the config file and front-end markers.
	pinnedModel string
}

// NewCalculator creates a calculator backed by the given detector.
func NewCalculator(d *Detector) *Calculator {
	return &Calculator{detector: d}
}

// NewCalculatorWithModel creates a calculator pinned to the given model.
// An empty model is equivalent to NewCalculator.
func NewCalculatorWithModel(d *Detector, model string) *Calculator {
	return &Calculator{detector: d, pinnedModel: model}
}

// Calculate returns the estimated dollar value of tokensSaved.
//
// modelOverride, when non-empty, takes precedence over both the pinned
// model and the detected model. Unknown models are priced at the default
// model's rate. The only error
// condition is invalid input; every internal failure degrades to a
// zero-cost attribution against the default model.
func (c *Calculator) Calculate(tokensSaved float64, modelOverride string) (Attribution, error) {
	if math.IsNaN(tokensSaved) || math.IsInf(tokensSaved, 0) || tokensSaved < 0 {
		return Attribution{}, ErrInvalidTokenCount
	}
	if tokensSaved > maxBillableTokens {
		tokensSaved = maxBillableTokens
	}

	if modelOverride == "" {
		modelOverride = c.pinnedModel
	}

	clientID, modelID := "default", DefaultModelID
	if c.detector != nil {
		clientID, modelID = c.detector.Detect()
	}
	if modelOverride != "" {
		modelID = modelOverride
	}

	price, ok := Lookup(modelID)
	if !ok {
		// Unknown model: keep the id for attribution, price at default rates.
		price, ok = Lookup(DefaultModelID)
		if !ok {
			return Attribution{
				ModelID:  DefaultModelID,
				ClientID: clientID,
				Currency: "USD",
			}, nil
		}
	}

	return Attribution{
		ModelID:       modelID,
		ClientID:      clientID,
		PerMillionUSD: price.PerMillionUSD,
		CostUSD:       roundCents(tokensSaved / 1e6 * price.PerMillionUSD),
		Currency:      "USD",
	}, nil
}

// roundCents rounds to two decimal places (whole cents).
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
