package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a short lowercase alphanumeric ID of the given size.
func GenerateID(size int) (string, error) {
	return gonanoid.Generate(characters, size)
}
