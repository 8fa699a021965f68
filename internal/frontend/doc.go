// Package frontend serves the browser client and forwards its /api calls
// to the backend API, translating the browser-facing paths to the backend's
// versioned routes. Calls that change provider configuration are signed
// with a short-lived admin token when an admin secret is configured.
package frontend
