// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the auth port interfaces. Hand-written doubles live in internal/mocks/auth;
// the generated mocks here are for tests that need call-order and argument
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "token").Return(session, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports.
// This creates MockSessionStore with Create, Get, Delete, Renew.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/noticenest/noticenest/internal/ports SessionStore

// Generate mock for AuthProvider interface from internal/ports.
// This creates MockAuthProvider with Begin, Exchange.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_provider_mock.go github.com/noticenest/noticenest/internal/ports AuthProvider
