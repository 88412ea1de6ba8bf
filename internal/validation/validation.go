// Package validation binds and validates request payloads.
//
// It uses the `validator` library to enforce the rules declared in struct
// tags and turns failures into field errors the client can understand.
package validation
