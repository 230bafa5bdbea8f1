package types

import (
	"time"
)

type HealthResponse struct {
	Now       time.Time `json:"time"`
	StartTime time.Time `json:"startTime"`
	Version   string    `json:"version"`
}

// CheckResponse is what the page renders: isWhitelisted is null until a
// check finished and error is null unless the check failed.
type CheckResponse struct {
	Address         string  `json:"address,omitempty"`
	ChecksumAddress string  `json:"checksumAddress,omitempty"`
	Status          string  `json:"status"`
	IsWhitelisted   *bool   `json:"isWhitelisted"`
	IsLoading       bool    `json:"isLoading"`
	Error           *string `json:"error"`
}

type SessionResponse struct {
	SessionId string        `json:"sessionId"`
	State     CheckResponse `json:"state"`
}

type SubmitRequest struct {
	Address string `json:"address"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ListInfoResponse struct {
	Sources     []string `json:"sources"`
	Addresses   int      `json:"addresses"`
	Unique      int      `json:"unique"`
	Fingerprint string   `json:"fingerprint"`
}
