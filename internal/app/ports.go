package app

import (
	"context"
	"time"
)

type GenerateUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type StatusUseCase interface {
	Status(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type SwapUseCase interface {
	Swap(ctx context.Context, req SwapRequest) (*SwapResponse, error)
}

type ViewPlanUseCase interface {
	// ViewActive loads the active plan with its day assignments resolved.
	ViewActive(ctx context.Context) (*GenerateResponse, error)
}

type EnsureUseCase interface {
	// EnsureActivePlan creates a plan when none covers now and
	// auto-creation is enabled.
	EnsureActivePlan(ctx context.Context, now time.Time) (*EnsureResult, error)
}
