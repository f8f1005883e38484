package api_mocks

//go:generate mockgen -source=../client.go -destination=api_mocks.go -package=api_mocks

// This file contains the go:generate directive to generate mocks for the API client interface.
// To regenerate the mocks, run:
//   go generate ./internal/api/api_mocks
