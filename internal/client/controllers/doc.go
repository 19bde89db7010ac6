// Package controllers drives the login, registration and profile flows of
// the I Care client.
//
// Controllers own form state and the in-progress flags of their actions,
// call the services, and report outcomes through a UI (navigation and
// blocking alerts). They hold no lock while calling the network or the UI,
// so a UI may call back into any controller.
package controllers
