package domain

// OrderType is an immutable order template drawn when the player places an order.
//
// Multiplier scales the final profit. Risk is carried for data fidelity only;
// the profit resolver does not read it.
type OrderType struct {
	Name       string  `json:"name" yaml:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Risk       float64 `json:"risk" yaml:"risk"`
}

// Number of order slots offered to the player per turn.
const OrderSlots = 5
