package memory

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/staff"
)

type staffRepository struct {
	store *Store
}

// NewStaffRepository 创建管理员仓储
func NewStaffRepository(store *Store) staff.Repository {
	return &staffRepository{store: store}
}

func (r *staffRepository) Create(ctx context.Context, s *staff.Staff) error {
	return r.store.write(ctx, func(t *tables) error {
		for _, existing := range t.staff {
			if strings.EqualFold(existing.Email, s.Email) {
				return staff.ErrEmailDuplicate
			}
		}
		s.ID = t.nextID("staff")
		t.staff[s.ID] = *s
		return nil
	})
}

func (r *staffRepository) FindByID(_ context.Context, id uint) (*staff.Staff, error) {
	var out *staff.Staff
	err := r.store.read(func(t *tables) error {
		s, ok := t.staff[id]
		if !ok {
			return staff.ErrStaffNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *staffRepository) FindByEmail(_ context.Context, email string) (*staff.Staff, error) {
	var out *staff.Staff
	err := r.store.read(func(t *tables) error {
		for _, s := range t.staff {
			if strings.EqualFold(s.Email, email) {
				out = &s
				return nil
			}
		}
		return staff.ErrStaffNotFound
	})
	return out, err
}

func (r *staffRepository) Update(ctx context.Context, s *staff.Staff) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.staff[s.ID]; !ok {
			return staff.ErrStaffNotFound
		}
		t.staff[s.ID] = *s
		return nil
	})
}
