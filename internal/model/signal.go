package model

// Action is the trading decision attached to a signal.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Signal is emitted for every aligned day after the first.
type Signal struct {
	Day        int // 1-based position in the aligned series
	PriceIndex int // 0-based index of the price the aligned window ends on
	Action     Action
}
