// Package auth implements password hashing, the signed session cookie and
// anti-forgery tokens.
//
// The session cookie carries the caller's identity as JSON followed by an
// HMAC-SHA256 signature over it, so a client cannot edit or forge it without
// the server secret. Sessions are stateless: a leaked cookie stays valid until
// it expires, there is no server-side revocation list.
package auth
