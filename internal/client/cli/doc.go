// Package cli provides the interactive signlink terminal client.
//
// App wires configuration, the credential store, the backend client and the
// auth controller, then runs a REPL. The commands on offer follow the
// navigation subtree selected for the current auth status: login and signup
// while signed out, the app screens (translate, chats, search, profile) while
// signed in. A session rejected by the backend drops the user back to the
// login commands.
package cli
