// Package handler is the HTTP layer between the router and the services.
//
// It binds and validates requests through the validation package, calls the
// matching service and lets the typed pipeline in base.go write the
// response.
package handler
