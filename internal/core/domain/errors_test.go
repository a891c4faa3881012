package domain

import (
	"errors"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{200, nil},
		{201, nil},
		{0, ErrNetwork},
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{409, ErrConflict},
		{400, ErrValidation},
		{422, ErrValidation},
		{500, ErrServer},
		{503, ErrServer},
	}
	for _, tt := range tests {
		got := ClassifyStatus(tt.status)
		if !errors.Is(got, tt.want) && got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSessionLoggedIn(t *testing.T) {
	if (Session{State: StateAuthenticated}).LoggedIn() {
		t.Error("authenticated session without token reports logged in")
	}
	if !(Session{State: StateAuthenticated, Token: "jwt"}).LoggedIn() {
		t.Error("authenticated session with token reports logged out")
	}
	if (Session{State: StateProbing, Token: "jwt"}).LoggedIn() {
		t.Error("probing session reports logged in")
	}
}

func TestSessionLoading(t *testing.T) {
	if !(Session{State: StateProbing}).Loading() {
		t.Error("probing session not loading")
	}
	if !(Session{State: StateAuthenticating}).Loading() {
		t.Error("authenticating session not loading")
	}
	if (Session{State: StateIdle}).Loading() {
		t.Error("idle session loading")
	}
}
