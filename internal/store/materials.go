package store

import (
	"context"
	"fmt"

	"github.com/amityadav/studybuddy/internal/domain"
)

func emptyMaterials() []domain.StudyMaterial { return []domain.StudyMaterial{} }

// Materials returns every stored material in insertion order
func (s *Store) Materials(ctx context.Context) []domain.StudyMaterial {
	return read(ctx, s, familyMaterials, emptyMaterials)
}

// Material looks up one material by id
func (s *Store) Material(ctx context.Context, id string) (domain.StudyMaterial, bool) {
	for _, m := range s.Materials(ctx) {
		if m.ID == id {
			return m, true
		}
	}
	return domain.StudyMaterial{}, false
}

// AppendMaterial adds a new material. Ids must be unique.
func (s *Store) AppendMaterial(ctx context.Context, m domain.StudyMaterial) error {
	_, err := mutate(ctx, s, familyMaterials, emptyMaterials, func(list []domain.StudyMaterial) ([]domain.StudyMaterial, error) {
		for _, existing := range list {
			if existing.ID == m.ID {
				return nil, fmt.Errorf("material %s: %w", m.ID, ErrDuplicateID)
			}
		}
		return append(list, m), nil
	})
	return err
}

// DeleteMaterial removes the material record only. Side tables are untouched.
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	_, err := mutate(ctx, s, familyMaterials, emptyMaterials, func(list []domain.StudyMaterial) ([]domain.StudyMaterial, error) {
		out := list[:0]
		for _, m := range list {
			if m.ID != id {
				out = append(out, m)
			}
		}
		return out, nil
	})
	return err
}
