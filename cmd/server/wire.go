//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/nomadreads/nomadreads-server/internal/infrastructure"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver"
)

// BuildApplication assembles the same graph main wires by hand.
func BuildApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
