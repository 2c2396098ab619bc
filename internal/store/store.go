// Package store holds interview sessions in memory.
package store

import (
	"errors"
	"time"

	"github.com/avoronin/interviewd/internal/domain"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("interview not found")

// Store is the session storage interface consumed by the interview service.
type Store interface {
	Put(session *domain.Session)
	Get(id string) (*domain.Session, error)
	Delete(id string)
	Len() int
	Expired(ttl time.Duration) []string
	Clear()
}
