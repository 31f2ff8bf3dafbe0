//go:build !race

package auth

// passwordHashCost balances login latency against brute-force resistance
func passwordHashCost() int {
	return 12
}
