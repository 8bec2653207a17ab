package repository

import (
	"context"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/store"
)

type Skills struct {
	c collection[domain.Skill]
}

func NewSkills(kv store.KV) *Skills {
	return &Skills{
		c: collection[domain.Skill]{
			kv:   kv,
			key:  KeySkills,
			seed: empty[domain.Skill],
			id:   func(s domain.Skill) string { return s.ID },
		},
	}
}

func (r *Skills) List(ctx context.Context) ([]domain.Skill, error) {
	return r.c.list(ctx)
}

func (r *Skills) Get(ctx context.Context, id string) (domain.Skill, error) {
	return r.c.get(ctx, id)
}

func (r *Skills) Add(ctx context.Context, in domain.SkillInput) (domain.Skill, error) {
	if err := in.Validate(); err != nil {
		return domain.Skill{}, err
	}

	s := domain.NewSkill(newID(), in)
	err := r.c.mutate(ctx, func(items []domain.Skill) ([]domain.Skill, error) {
		return append([]domain.Skill{s}, items...), nil
	})
	if err != nil {
		return domain.Skill{}, err
	}
	return s, nil
}

func (r *Skills) Update(ctx context.Context, id string, in domain.SkillInput) (domain.Skill, error) {
	if err := in.Validate(); err != nil {
		return domain.Skill{}, err
	}

	var updated domain.Skill
	err := r.c.mutate(ctx, func(items []domain.Skill) ([]domain.Skill, error) {
		i := r.c.indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		items[i].Name = in.Name
		items[i].Color = in.Color
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return domain.Skill{}, err
	}
	return updated, nil
}

func (r *Skills) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}
