package passwordreset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var T0 = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

func TestIsExpired(t *testing.T) {
	reset := PasswordReset{
		ID:        1,
		UserID:    1,
		Token:     "test-token",
		CreatedAt: T0,
		ExpiresAt: T0.Add(15 * time.Minute),
	}
	cases := []struct {
		id        string
		at        time.Time
		isExpired bool
	}{
		{id: "created", at: T0, isExpired: false},
		{id: "before-expiration", at: T0.Add(15*time.Minute - time.Nanosecond), isExpired: false},
		{id: "expiration-instant", at: T0.Add(15 * time.Minute), isExpired: true},
		{id: "after-expiration", at: T0.Add(15*time.Minute + time.Second), isExpired: true},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Equal(t, testcase.isExpired, reset.IsExpired(testcase.at))
		})
	}
}

func TestIsExpiredOnStoredReset(t *testing.T) {
	repo := NewFakeRepository()
	reset, err := repo.Create(context.Background(), NewCreateInput(1, "test-token", T0, time.Minute))
	require.NoError(t, err)

	require.False(t, repo.GetByID(reset.ID).IsExpired(T0))
	require.True(t, repo.GetByID(reset.ID).IsExpired(T0.Add(time.Minute)))
}

func TestTokenIsBlank(t *testing.T) {
	for _, token := range []Token{"", " ", "\t\n"} {
		require.True(t, token.IsBlank(), "%q", string(token))
	}
	for _, token := range []Token{"a", " a "} {
		require.False(t, token.IsBlank(), "%q", string(token))
	}
}

func TestNewCreateInput(t *testing.T) {
	input := NewCreateInput(42, Token("test-token"), T0, 10*time.Minute)

	require.NoError(t, input.Validate())
	require.Equal(t, T0, input.CreatedAt)
	require.Equal(t, T0.Add(10*time.Minute), input.ExpiresAt)
	require.True(t, input.ExpiresAt.After(input.CreatedAt))
}

func TestCreateInputValidation(t *testing.T) {
	cases := []struct {
		id    string
		input CreateInput
	}{
		{id: "no-user", input: NewCreateInput(0, "token", T0, time.Minute)},
		{id: "blank-token", input: NewCreateInput(1, "", T0, time.Minute)},
		{id: "zero-limit", input: NewCreateInput(1, "token", T0, 0)},
		{id: "negative-limit", input: NewCreateInput(1, "token", T0, -time.Minute)},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			require.Error(t, testcase.input.Validate())
		})
	}
}

func TestFind(t *testing.T) {
	resets := []PasswordReset{
		{ID: 1, UserID: 1, Token: "token-1", ExpiresAt: T0},
		{ID: 2, UserID: 1, Token: "token-2", ExpiresAt: T0},
	}

	found, ok := Find(resets, "token-2")
	require.True(t, ok)
	require.Equal(t, ID(2), found.ID)

	for _, token := range []Token{"", "token", "token-3", "token-22", "TOKEN-1"} {
		_, ok := Find(resets, token)
		require.False(t, ok, string(token))
	}

	_, ok = Find(nil, "token-1")
	require.False(t, ok)
}

func TestActive(t *testing.T) {
	resets := []PasswordReset{
		{ID: 1, ExpiresAt: T0.Add(-time.Second)},
		{ID: 2, ExpiresAt: T0},
		{ID: 3, ExpiresAt: T0.Add(time.Second)},
	}

	active := Active(resets, T0)
	require.Len(t, active, 1)
	require.Equal(t, ID(3), active[0].ID)

	require.Empty(t, Active(nil, T0))
}

func TestTokenIsMaskedWhenPrinted(t *testing.T) {
	require.Equal(t, "***", Token("secret").String())
}
