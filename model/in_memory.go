// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-a2a/vertexops/types"
)

// InMemoryService represents an in-memory implementation of [types.ModelService].
type InMemoryService struct {
	mu     sync.Mutex
	parent string
	models []*types.Model
	nextID int64
	clock  time.Time
}

var _ types.ModelService = (*InMemoryService)(nil)

// NewInMemoryService creates a new instance of [InMemoryService] whose resource names live under parent,
// e.g. "projects/p/locations/us-central1".
func NewInMemoryService(parent string) *InMemoryService {
	return &InMemoryService{
		parent: parent,
		nextID: 5000,
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *InMemoryService) find(name string) (int, bool) {
	i := slices.IndexFunc(s.models, func(m *types.Model) bool {
		return m.Name == name || m.ID == name
	})
	return i, i >= 0
}

// UploadModel implements [types.ModelService].
func (s *InMemoryService) UploadModel(ctx context.Context, upload *types.ModelUpload) (*types.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.clock = s.clock.Add(time.Second)
	id := strconv.FormatInt(s.nextID, 10)
	m := &types.Model{
		Name:              s.parent + "/models/" + id,
		ID:                id,
		DisplayName:       upload.DisplayName,
		Description:       upload.Description,
		ArtifactURI:       upload.ArtifactURI,
		ContainerImageURI: upload.ContainerImageURI,
		CreateTime:        s.clock,
	}
	s.models = append(s.models, m)

	out := *m
	return &out, nil
}

// GetModel implements [types.ModelService].
func (s *InMemoryService) GetModel(ctx context.Context, name string) (*types.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(name)
	if !ok {
		return nil, &types.NotFoundError{Kind: "model", Name: name}
	}
	out := *s.models[i]
	return &out, nil
}

// ListModels implements [types.ModelService].
func (s *InMemoryService) ListModels(ctx context.Context) ([]*types.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.Model, len(s.models))
	for i, m := range s.models {
		c := *m
		out[i] = &c
	}
	return out, nil
}

// DeleteModel implements [types.ModelService].
func (s *InMemoryService) DeleteModel(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(name)
	if !ok {
		return &types.NotFoundError{Kind: "model", Name: name}
	}
	s.models = slices.Delete(s.models, i, i+1)
	return nil
}
