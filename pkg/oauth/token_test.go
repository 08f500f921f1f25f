package oauth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
)

func TestTokenStateStatus(t *testing.T) {
	t.Parallel()

	t.Run("empty state is unknown", func(t *testing.T) {
		t.Parallel()
		s := oauth.NewTokenState(newTestClock())
		require.Equal(t, oauth.ExpiryUnknown, s.Status())
	})

	t.Run("no expiry is unknown", func(t *testing.T) {
		t.Parallel()
		s := oauth.NewTokenState(newTestClock())
		s.Set(oauth.TokenParams{AccessToken: "tok"})
		require.Equal(t, oauth.ExpiryUnknown, s.Status())
	})

	t.Run("expiry without token is unknown", func(t *testing.T) {
		t.Parallel()
		s := oauth.NewTokenState(newTestClock())
		s.Set(oauth.TokenParams{ExpiresIn: time.Hour})
		require.Equal(t, oauth.ExpiryUnknown, s.Status())
	})

	t.Run("valid then expired", func(t *testing.T) {
		t.Parallel()
		clock := newTestClock()
		s := oauth.NewTokenState(clock)
		s.Set(oauth.TokenParams{AccessToken: "tok", ExpiresIn: 3600 * time.Second})

		require.Equal(t, clock.Now().Add(time.Hour), s.ExpiresAt())
		require.Equal(t, oauth.ExpiryValid, s.Status())

		clock.Advance(time.Hour)
		require.Equal(t, oauth.ExpiryValid, s.Status(), "expiry instant itself is still valid")

		clock.Advance(time.Second)
		require.Equal(t, oauth.ExpiryExpired, s.Status())
	})

	t.Run("absolute expiry", func(t *testing.T) {
		t.Parallel()
		clock := newTestClock()
		s := oauth.NewTokenState(clock)
		s.Set(oauth.TokenParams{AccessToken: "tok", ExpiresAt: clock.Now().Add(-time.Minute)})
		require.Equal(t, oauth.ExpiryExpired, s.Status())
	})

	t.Run("relative expiry wins", func(t *testing.T) {
		t.Parallel()
		clock := newTestClock()
		s := oauth.NewTokenState(clock)
		s.Set(oauth.TokenParams{
			AccessToken: "tok",
			ExpiresAt:   clock.Now().Add(-time.Minute),
			ExpiresIn:   time.Minute,
		})
		require.Equal(t, oauth.ExpiryValid, s.Status())
	})

	t.Run("clock func", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		s := oauth.NewTokenState(oauth.ClockFunc(func() time.Time { return now }))
		s.Set(oauth.TokenParams{AccessToken: "tok", ExpiresAt: now.Add(-time.Nanosecond)})
		require.Equal(t, oauth.ExpiryExpired, s.Status())
	})
}

func TestTokenStateSetReplaces(t *testing.T) {
	t.Parallel()

	s := oauth.NewTokenState(newTestClock())
	s.Set(oauth.TokenParams{
		AccessToken:  "first",
		RefreshToken: "refresh",
		Identity:     "openid",
		ExpiresIn:    time.Hour,
	})
	s.Set(oauth.TokenParams{AccessToken: "second"})

	require.Equal(t, "second", s.AccessToken())
	require.Empty(t, s.RefreshToken())
	require.Empty(t, s.Identity())
	require.True(t, s.ExpiresAt().IsZero())
	require.Equal(t, oauth.ExpiryUnknown, s.Status())
}

func TestTokenStateOAuth2(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	s := oauth.NewTokenState(clock)
	s.Set(oauth.TokenParams{
		AccessToken:  "tok",
		RefreshToken: "ref",
		Identity:     "OPENID",
		ExpiresIn:    2 * time.Hour,
	})

	tok := s.OAuth2()
	require.Equal(t, "tok", tok.AccessToken)
	require.Equal(t, "ref", tok.RefreshToken)
	require.Equal(t, clock.Now().Add(2*time.Hour), tok.Expiry)
	require.Equal(t, "OPENID", tok.Extra("openid"))
}

func TestExpiryStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unknown", oauth.ExpiryUnknown.String())
	require.Equal(t, "valid", oauth.ExpiryValid.String())
	require.Equal(t, "expired", oauth.ExpiryExpired.String())
}
