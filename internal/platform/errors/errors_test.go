package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "no"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "transport", err: E(KindTransport, "reset"), want: http.StatusBadGateway},
		{name: "conflict", err: E(KindConflict, "busy"), want: http.StatusConflict},
		{name: "untyped", err: stderrors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("load: %w", E(KindNotFound, "missing")), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindForStatus(t *testing.T) {
	t.Parallel()

	tests := map[int]Kind{
		http.StatusBadRequest:          KindInvalidInput,
		http.StatusUnprocessableEntity: KindInvalidInput,
		http.StatusUnauthorized:        KindUnauthorized,
		http.StatusForbidden:           KindForbidden,
		http.StatusNotFound:            KindNotFound,
		http.StatusServiceUnavailable:  KindUnavailable,
		http.StatusConflict:            KindConflict,
		http.StatusInternalServerError: KindTransport,
		http.StatusBadGateway:          KindTransport,
	}
	for status, want := range tests {
		if got := KindForStatus(status); got != want {
			t.Fatalf("KindForStatus(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection refused")
	err := Wrap(KindTransport, "campaigns unavailable", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false")
	}
	if got := KindOf(err); got != KindTransport {
		t.Fatalf("KindOf() = %q, want %q", got, KindTransport)
	}
	if !Is(err, KindTransport) {
		t.Fatal("Is(err, KindTransport) = false")
	}
}

func TestMessageFallsBack(t *testing.T) {
	t.Parallel()

	if got := Message(E(KindTransport, ""), "fallback"); got != "fallback" {
		t.Fatalf("Message() = %q, want fallback", got)
	}
	if got := Message(E(KindInvalidInput, "name is taken"), "fallback"); got != "name is taken" {
		t.Fatalf("Message() = %q, want server text", got)
	}
	if got := Message(stderrors.New("raw"), "fallback"); got != "fallback" {
		t.Fatalf("Message() = %q, want fallback for untyped error", got)
	}
	if got := Message(nil, "fallback"); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " form.name_required ", "name required")); got != "form.name_required" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(stderrors.New("raw")); got != "" {
		t.Fatalf("LocalizationKey() = %q, want empty", got)
	}
}
