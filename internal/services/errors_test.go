package services_test

import (
	"errors"
	"strings"
	"testing"

	"videoforge/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrFetch, "fetch", "yt-dlp", "exit code 1", nil)
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "fetch: yt-dlp: exit code 1") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := services.Wrap(services.ErrEncode, "encode", "", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected ErrEncode marker, got %v", err)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrFilesystem) {
		t.Fatalf("expected filesystem fallback marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "stage failure") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
