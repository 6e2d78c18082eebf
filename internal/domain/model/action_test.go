package model

import (
	"errors"
	"testing"

	"telegram-anon-relay/internal/domain"
)

func TestActionRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		action  Action
		encoded string
	}{
		{"select request", SendAction(), "send"},
		{"concrete target", SendToAction(-1001234567890), "send_to:-1001234567890"},
		{"positive target", SendToAction(42), "send_to:42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.action.String(); got != tc.encoded {
				t.Errorf("String() = %q, want %q", got, tc.encoded)
			}
			parsed, err := ParseAction(tc.encoded)
			if err != nil {
				t.Fatalf("ParseAction(%q): %v", tc.encoded, err)
			}
			if parsed != tc.action {
				t.Errorf("ParseAction(%q) = %+v, want %+v", tc.encoded, parsed, tc.action)
			}
		})
	}
}

func TestParseActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{"", "sendx", "send_to:", "send_to:abc", "buy:1"} {
		t.Run(data, func(t *testing.T) {
			if _, err := ParseAction(data); !errors.Is(err, domain.ErrUnknownAction) {
				t.Errorf("ParseAction(%q) err = %v, want ErrUnknownAction", data, err)
			}
		})
	}
}
