package id

import (
	"strings"

	"github.com/google/uuid"
)

/**
 * @file: uuid.go
 * @description: id util
 */

// GetUUID generates a new UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a new UUID not horizontal line
func GetUUIDWithoutDashes() string {
	return strings.Replace(uuid.NewString(), "-", "", -1)
}
