// Package models contains the request-scoped data types of the greet service.
package models

// Person is the body accepted by the greet-by-body endpoint.
//
// The binding tags are the only place the greeting rule lives: gin's validator
// rejects an empty name or a zero age when the body is bound. An absent age
// decodes to 0, so it fails the same way as an explicit 0.
type Person struct {
	Name string `json:"name" binding:"required"`
	Age  int    `json:"age" binding:"required"`
}
