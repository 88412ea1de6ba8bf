// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures (FieldError for
// request validation, HTTPError for API responses) so that clients always
// receive a consistent error body:
//
//	404            {"error": "Scientist not found"}
//	everything else {"errors": ["name is required"]}
package errs
