// Package auth implements token-based authentication with a bounded
// per-user refresh token ledger.
//
// Two token kinds are issued, each signed with its own secret:
//   - Access tokens are short-lived and stateless; a valid signature and
//     an unexpired claim set is all that is required to accept one.
//   - Refresh tokens are longer-lived and additionally gated by the
//     per-user refresh token ledger stored on the account record. A
//     refresh token that verifies but is absent from the ledger (evicted,
//     or revoked) is rejected.
//
// The ledger is a bounded FIFO: every login appends a refresh token and
// evicts the oldest entry once capacity is reached, so up to N devices
// can hold live sessions per account.
//
// Auther orchestrates registration, login, access-token renewal, and
// request authentication. It reads all secrets and TTLs from an explicit
// Config constructed at startup; nothing in this package touches the
// process environment.
package auth
