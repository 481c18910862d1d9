package ports

import (
	"context"

	"go.trai.ch/muleboot/internal/core/domain"
)

// Launcher transfers control to the application.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Handoff starts the application described by h.
	//
	// In exec mode a successful call never returns. In child mode it returns
	// once the application exits, with an error carrying the application's
	// exit status when that status is non-zero.
	Handoff(ctx context.Context, h domain.Handoff) error
}
