// Package cli provides the interactive photoshare command-line client.
//
// NewApp wires configuration, the local session database, the API client and
// the auth service. Run restores a previous session when a token is stored
// and then starts a line-oriented REPL until the user exits.
//
// Commands:
//   - signup / register: create an account, sign in, create the default profile
//   - signin / login: sign in with an existing account
//   - whoami, profiles: show the own profile or every profile
//   - rename: change the nickname and optionally upload an avatar
//   - feed: show the posts and comments loaded at sign-in
//   - status: dump the session state
//   - logout, exit
package cli
