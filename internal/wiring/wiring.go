// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/muleboot/internal/adapters/cas"
	_ "go.trai.ch/muleboot/internal/adapters/config"
	_ "go.trai.ch/muleboot/internal/adapters/launcher"
	_ "go.trai.ch/muleboot/internal/adapters/lock"
	_ "go.trai.ch/muleboot/internal/adapters/logger"
	_ "go.trai.ch/muleboot/internal/adapters/manifest"
	_ "go.trai.ch/muleboot/internal/adapters/python"
	_ "go.trai.ch/muleboot/internal/adapters/shell"
	_ "go.trai.ch/muleboot/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/muleboot/internal/app"
	_ "go.trai.ch/muleboot/internal/engine/bootstrap"
)
