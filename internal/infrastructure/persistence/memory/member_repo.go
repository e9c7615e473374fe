package memory

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type memberRepository struct {
	store *Store
}

// NewMemberRepository 创建读者仓储
func NewMemberRepository(store *Store) member.Repository {
	return &memberRepository{store: store}
}

func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	return r.store.write(ctx, func(t *tables) error {
		if err := memberUnique(t, m); err != nil {
			return err
		}
		m.ID = t.nextID("members")
		t.members[m.ID] = *m
		return nil
	})
}

func (r *memberRepository) FindByID(_ context.Context, id uint) (*member.Member, error) {
	return r.findOne(func(m member.Member) bool { return m.ID == id }, member.NotFound(id))
}

func (r *memberRepository) FindByIdentification(_ context.Context, identification string) (*member.Member, error) {
	return r.findOne(func(m member.Member) bool {
		return m.Identification == identification
	}, member.ErrMemberNotFound.WithMessage("证件号为 %s 的读者不存在", identification))
}

func (r *memberRepository) FindByEmail(_ context.Context, email string) (*member.Member, error) {
	return r.findOne(func(m member.Member) bool {
		return strings.EqualFold(m.Email, email)
	}, member.ErrMemberNotFound)
}

func (r *memberRepository) findOne(match func(member.Member) bool, notFound error) (*member.Member, error) {
	var out *member.Member
	err := r.store.read(func(t *tables) error {
		for _, m := range t.members {
			if match(m) {
				out = &m
				return nil
			}
		}
		return notFound
	})
	return out, err
}

func (r *memberRepository) FindByIDs(_ context.Context, ids []uint) (map[uint]*member.Member, error) {
	out := make(map[uint]*member.Member, len(ids))
	err := r.store.read(func(t *tables) error {
		for _, id := range ids {
			if m, ok := t.members[id]; ok {
				out[id] = &m
			}
		}
		return nil
	})
	return out, err
}

func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.members[m.ID]; !ok {
			return member.NotFound(m.ID)
		}
		if err := memberUnique(t, m); err != nil {
			return err
		}
		t.members[m.ID] = *m
		return nil
	})
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.members[id]; !ok {
			return member.NotFound(id)
		}
		for _, l := range t.loans {
			if l.MemberID == id {
				return apperrors.ErrReferencedRow
			}
		}
		delete(t.members, id)
		return nil
	})
}

func (r *memberRepository) List(_ context.Context, params member.ListParams) ([]*member.Member, int64, error) {
	var rows []member.Member
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.members, func(m member.Member) bool {
			if params.Status != "" && m.Status != params.Status {
				return false
			}
			return params.Keyword == "" ||
				containsFold(m.FirstName, params.Keyword) ||
				containsFold(m.LastName, params.Keyword) ||
				containsFold(m.Identification, params.Keyword) ||
				containsFold(m.Email, params.Keyword)
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}

func memberUnique(t *tables, m *member.Member) error {
	for id, existing := range t.members {
		if id == m.ID {
			continue
		}
		if existing.Identification == m.Identification {
			return member.ErrIdentificationDuplicate
		}
		if strings.EqualFold(existing.Email, m.Email) {
			return member.ErrEmailDuplicate
		}
	}
	return nil
}
