// Package greeting builds the greeting strings returned by the HTTP handlers.
package greeting

import (
	"fmt"

	"github.com/sebasr/greet-service/internal/models"
)

// DefaultName is used when no name is supplied.
const DefaultName = "World"

// ValidationMessage is the response body for a person missing a name or an age.
const ValidationMessage = "Please provide both name and age in the request body."

// ForName returns "Hello, {name}." or "Hello, World." when name is empty.
func ForName(name string) string {
	if name == "" {
		name = DefaultName
	}
	return "Hello, " + name + "."
}

// ForPerson returns the personalized greeting for a person that passed binding.
func ForPerson(p models.Person) string {
	return fmt.Sprintf("Hello, %s! You are %d years old.", p.Name, p.Age)
}
