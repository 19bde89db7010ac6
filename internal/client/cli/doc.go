// Package cli provides the interactive I Care command-line client.
//
// It wires configuration, the local session store, the REST API client,
// the services and the form controllers, and runs a REPL whose commands
// depend on whether the user is signed in:
//
//	Signed out: register, login, help, exit
//	Signed in:  profile, edit, image <path>, upload, status, logout, help, exit
//
// App implements controllers.UI: navigation to the profile screen loads and
// prints the profile, alerts are printed as blocking messages. App also
// subscribes to the session so every sign-in and sign-out is reported,
// whichever command caused it.
package cli
