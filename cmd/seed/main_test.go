package main

import "testing"

func TestNextPrice_NeverNonPositive(t *testing.T) {
	// Start at the floor itself, where a losing streak would otherwise drive
	// the walk below zero.
	price := 1.0
	for i := 0; i < 10000; i++ {
		price = nextPrice(price)
		if price < 1 {
			t.Fatalf("step %d: price %v fell below the floor", i, price)
		}
	}
}

func TestNextPrice_StepBounded(t *testing.T) {
	const eps = 1e-9
	price := 1000.0
	for i := 0; i < 1000; i++ {
		next := nextPrice(price)
		if r := next / price; r < 0.95-eps || r > 1.05+eps {
			t.Fatalf("step %d: %v -> %v exceeds the 5%% step bound", i, price, next)
		}
		price = next
	}
}
