// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package practice

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/models"
)

// Input limits
const (
	MaxLabelLength = 200
	MaxMoodLength  = 100
	MaxNotesLength = 2000

	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultTrendDays = 90
	HotSpotLimit     = 5
)

// Service implements session materialization, scoring and publishing on top
// of a Store.
type Service struct {
	store Store
	cat   *catalog.Catalog

	now   func() time.Time
	newID func() string
}

// NewService builds a service over store using the given pose catalog.
func NewService(store Store, cat *catalog.Catalog) *Service {
	return &Service{
		store: store,
		cat:   cat,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Catalog returns the catalog the service expands plans from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

func requireUser(userID string) error {
	if userID == "" {
		return models.ErrUnauthorized
	}
	return nil
}
