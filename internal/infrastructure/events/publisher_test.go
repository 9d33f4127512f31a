package events_test

import (
	"context"
	"testing"

	"Fundbridge/config"
	"Fundbridge/internal/infrastructure/events"
)

func TestSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix  string
		subject string
		want    string
	}{
		{prefix: "fundbridge", subject: "proposal.decided", want: "fundbridge.proposal.decided"},
		{prefix: " fundbridge. ", subject: "message.sent", want: "fundbridge.message.sent"},
		{prefix: "", subject: "message.sent", want: "message.sent"},
	}

	for _, tt := range tests {
		if got := events.Subject(tt.prefix, tt.subject); got != tt.want {
			t.Fatalf("Subject(%q, %q): expected %q, got %q", tt.prefix, tt.subject, tt.want, got)
		}
	}
}

func TestNewPublisherWithoutURLIsNop(t *testing.T) {
	t.Parallel()

	publisher, err := events.NewPublisher(&config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := publisher.(events.NopPublisher); !ok {
		t.Fatalf("expected NopPublisher, got %T", publisher)
	}
	if err := publisher.Publish(context.Background(), "proposal.decided", map[string]string{"id": "1"}); err != nil {
		t.Fatalf("nop publish must not fail: %v", err)
	}
	publisher.Close()
}
