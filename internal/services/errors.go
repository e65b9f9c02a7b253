package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a request that conflicts with itself (trim+pad).
	ErrValidation = errors.New("validation error")
	// ErrFetch marks a non-zero exit from the fetch tool.
	ErrFetch = errors.New("fetch failure")
	// ErrEncode marks a non-zero exit from the encode tool.
	ErrEncode = errors.New("encode failure")
	// ErrMissingArtifact marks a fetch that produced no resolvable file.
	ErrMissingArtifact = errors.New("missing output artifact")
	// ErrFilesystem marks temp cleanup or rename failures. These are logged
	// at the point of occurrence and never fail a job on their own.
	ErrFilesystem = errors.New("filesystem error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
