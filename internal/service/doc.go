// Package service provides the tool-provider registry.
//
// The registry keeps a catalog of providers, each exposing named tools, and
// routes "<service>.<tool>" calls to the provider that owns them.
//
// Features:
//   - Thread-safe service registration
//   - Category-based filtering
//   - Free-text discovery with relevance scoring
//   - Tool execution with context passing
//   - Service statistics
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(uncertainty.NewProvider(limits))
//	services := registry.Discover("propagate uncertainty", 5)
//	result, err := registry.Execute(ctx, "uncertainty.propagate", params, appCtx)
package service
