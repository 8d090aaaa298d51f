package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

/**
 * @file: ulid.go
 * @description: ulid
 */

func GetUlid() string {
	ms := ulid.Timestamp(time.Now())
	id, err := ulid.New(ms, rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}
