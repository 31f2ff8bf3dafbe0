//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

func passwordHashCost() int {
	// Lower cost under the race detector so the suite stays inside test timeouts.
	return bcrypt.DefaultCost
}
