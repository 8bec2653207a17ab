package repository

import (
	"context"
	"time"

	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/store"
)

// Messages holds contact form submissions. They are only ever created by the
// public contact form; the admin can mark them read or delete them.
type Messages struct {
	c   collection[domain.Message]
	now func() time.Time
}

func NewMessages(kv store.KV) *Messages {
	return &Messages{
		c: collection[domain.Message]{
			kv:   kv,
			key:  KeyMessages,
			seed: empty[domain.Message],
			id:   func(m domain.Message) string { return m.ID },
		},
		now: time.Now,
	}
}

func (r *Messages) List(ctx context.Context) ([]domain.Message, error) {
	return r.c.list(ctx)
}

// Add appends a submission to the end of the list.
func (r *Messages) Add(ctx context.Context, in domain.ContactInput) (domain.Message, error) {
	if err := in.Validate(); err != nil {
		return domain.Message{}, err
	}

	m := domain.NewMessage(newID(), in, r.now().UTC())
	err := r.c.mutate(ctx, func(items []domain.Message) ([]domain.Message, error) {
		return append(items, m), nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

// ToggleRead flips the read flag of message id and returns the new value.
func (r *Messages) ToggleRead(ctx context.Context, id string) (bool, error) {
	var read bool
	err := r.c.mutate(ctx, func(items []domain.Message) ([]domain.Message, error) {
		i := r.c.indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		items[i].Read = !items[i].Read
		read = items[i].Read
		return items, nil
	})
	return read, err
}

func (r *Messages) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

// Unread counts messages not yet marked read.
func Unread(messages []domain.Message) int {
	n := 0
	for _, m := range messages {
		if !m.Read {
			n++
		}
	}
	return n
}
