package passwordreset

import (
	"context"
	"fmt"
	"recovery/internal/core/domain/user"
	"sync"
	"time"
)

type FakeRepository struct {
	Resets      []PasswordReset
	ReturnError bool
	LockedFor   []user.ID
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Resets: make([]PasswordReset, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (reset PasswordReset, err error) {
	if r.ReturnError {
		return reset, fmt.Errorf("could not create password reset for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	reset = PasswordReset{
		ID:        ID(len(r.Resets) + 1),
		UserID:    input.UserID,
		Token:     input.Token,
		CreatedAt: input.CreatedAt,
		ExpiresAt: input.ExpiresAt,
	}
	r.Resets = append(r.Resets, reset)
	return reset, nil
}

func (r *FakeRepository) GetByUserID(ctx context.Context, userID user.ID) ([]PasswordReset, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not get password resets for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	resets := make([]PasswordReset, 0)
	for _, reset := range r.Resets {
		if reset.UserID == userID {
			resets = append(resets, reset)
		}
	}
	return resets, nil
}

func (r *FakeRepository) GetByUserIDWithLock(ctx context.Context, userID user.ID) ([]PasswordReset, error) {
	resets, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return resets, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.LockedFor = append(r.LockedFor, userID)
	return resets, nil
}

func (r *FakeRepository) Deactivate(ctx context.Context, ids []ID, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not deactivate password resets %v", ids)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, id := range ids {
		for ix, reset := range r.Resets {
			if reset.ID == id && reset.ExpiresAt.After(at) {
				r.Resets[ix].ExpiresAt = at
			}
		}
	}
	return nil
}

func (r *FakeRepository) GetByID(id ID) PasswordReset {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, reset := range r.Resets {
		if reset.ID == id {
			return reset
		}
	}
	panic(fmt.Sprintf("password reset %d does not exist", id))
}

type FakeTokenGenerator struct {
	Tokens []Token
	next   int
	lock   sync.Mutex
}

// NewFakeTokenGenerator returns the given tokens one by one and then
// keeps returning the last one.
func NewFakeTokenGenerator(tokens ...string) *FakeTokenGenerator {
	if len(tokens) == 0 {
		panic("at least one token is required")
	}
	g := &FakeTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, Token(t))
	}
	return g
}

func (g *FakeTokenGenerator) GenerateToken() Token {
	g.lock.Lock()
	defer g.lock.Unlock()
	token := g.Tokens[g.next]
	if g.next < len(g.Tokens)-1 {
		g.next++
	}
	return token
}

type FakeNotifier struct {
	SentTo      []user.User
	Sent        []PasswordReset
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) SendPasswordChangeNotification(ctx context.Context, u user.User, r PasswordReset) error {
	if n.ReturnError {
		return fmt.Errorf("could not send password change notification")
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.SentTo = append(n.SentTo, u)
	n.Sent = append(n.Sent, r)
	return nil
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}
