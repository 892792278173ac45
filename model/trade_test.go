package model

import (
	"testing"
)

func TestEvaluateTrade(t *testing.T) {
	catalog := map[string]Player{
		"1": {ID: "1", FirstName: "Jalen", LastName: "Hurts"},
		"2": {ID: "2", FirstName: "Tyler", LastName: "Lockett"},
		"3": {ID: "3", FirstName: "Breece", LastName: "Hall"},
	}
	stats := map[string]PlayerStats{
		"1": {PlayerID: "1", Projected: 22.0, PointsPPR: 25.0},
		"2": {PlayerID: "2", Projected: 11.0, PointsPPR: 8.5},
		"3": {PlayerID: "3", Projected: 15.0, PointsPPR: 14.0},
	}

	tests := map[string]struct {
		sideA    []string
		sideB    []string
		expected string
	}{
		"side A wins":           {sideA: []string{"1"}, sideB: []string{"2"}, expected: "A"},
		"side B wins":           {sideA: []string{"2"}, sideB: []string{"1"}, expected: "B"},
		"close trade is even":   {sideA: []string{"1"}, sideB: []string{"3", "2"}, expected: "even"},
		"unknown ids score zero": {sideA: []string{"nope"}, sideB: []string{"2"}, expected: "B"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ev := EvaluateTrade(nil, catalog, stats, tc.sideA, tc.sideB)
			if ev.Winner != tc.expected {
				t.Errorf("winner was %s (%.1f vs %.1f), expected %s", ev.Winner, ev.ScoreA, ev.ScoreB, tc.expected)
			}
		})
	}
}

func TestEvaluateTradeCustomScorer(t *testing.T) {
	count := func(_ map[string]Player, _ map[string]PlayerStats, ids []string) float64 {
		return float64(len(ids)) * 10
	}
	ev := EvaluateTrade(count, nil, nil, []string{"a", "b"}, []string{"c"})
	if ev.Winner != "A" {
		t.Errorf("winner was %s, expected A", ev.Winner)
	}
}
