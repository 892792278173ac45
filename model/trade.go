package model

// TradeScoreFunc values one side of a trade. It is a pluggable presentation
// aid, not part of the synchronization core; swap it out to change how the
// trade evaluator weighs players.
type TradeScoreFunc func(catalog map[string]Player, stats map[string]PlayerStats, playerIDs []string) float64

type TradeEvaluation struct {
	ScoreA float64
	ScoreB float64
	// Winner is "A", "B" or "even". The margin threshold keeps near-equal
	// trades from being declared lopsided.
	Winner string
}

// evenThreshold is the score margin under which a trade is called even.
const evenThreshold = 5.0

// DefaultTradeScore weighs projected points ahead of points already scored.
// Unknown player ids contribute nothing.
func DefaultTradeScore(catalog map[string]Player, stats map[string]PlayerStats, playerIDs []string) float64 {
	var total float64
	for _, id := range playerIDs {
		if _, ok := catalog[id]; !ok {
			continue
		}
		s, ok := stats[id]
		if !ok {
			continue
		}
		total += 0.6*s.Projected + 0.4*s.PointsPPR
	}
	return total
}

func EvaluateTrade(score TradeScoreFunc, catalog map[string]Player, stats map[string]PlayerStats, sideA, sideB []string) TradeEvaluation {
	if score == nil {
		score = DefaultTradeScore
	}
	ev := TradeEvaluation{
		ScoreA: score(catalog, stats, sideA),
		ScoreB: score(catalog, stats, sideB),
	}
	switch {
	case ev.ScoreA-ev.ScoreB > evenThreshold:
		ev.Winner = "A"
	case ev.ScoreB-ev.ScoreA > evenThreshold:
		ev.Winner = "B"
	default:
		ev.Winner = "even"
	}
	return ev
}
