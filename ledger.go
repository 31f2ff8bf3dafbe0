package auth

// Ledger manipulation is kept as pure functions over the slice stored on
// the user record. Persisting the result is the caller's job, one
// read-modify-write of the account row per mutation. Concurrent logins
// for the same account race on that write; last writer wins, which at
// worst evicts a legitimate token a little early. Signature and expiry
// checks remain independent gates either way.

// AppendRefreshToken records a newly issued refresh token. Duplicates
// are ignored. When the result would exceed max, the oldest entries are
// evicted first. A max of zero or less means the ledger is unbounded;
// that is a supported but degenerate configuration.
func AppendRefreshToken(tokens []string, token string, max int) []string {
	out := make([]string, 0, len(tokens)+1)
	out = append(out, tokens...)

	if !ContainsRefreshToken(out, token) {
		out = append(out, token)
	}

	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}

	return out
}

// ContainsRefreshToken reports whether token is currently honored
func ContainsRefreshToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// RemoveRefreshToken drops token from the ledger if present
func RemoveRefreshToken(tokens []string, token string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}
