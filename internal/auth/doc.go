// Package auth implements the stateless authentication core: credential
// verification against the directory, signed bearer-token issuance and
// validation, and resolution of token subjects to principals with their
// authority sets. There is no server-side token state; possession of a
// valid, unexpired token is the session.
package auth
