package services

import (
	"context"
	"testing"
	"time"
)

func TestChatMessagesOrderedByTimestamp(t *testing.T) {
	svc := NewChatService(newFakeChatRepo())
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second)}
	i := 0
	svc.now = func() time.Time { t := times[i]; i++; return t }

	for _, content := range []string{"I have a headache", "Tell me more", "Since this morning"} {
		if _, err := svc.AddMessage(ctx, "s1", content, true, nil); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	messages, err := svc.GetMessages(ctx, "s1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for j := 1; j < len(messages); j++ {
		if messages[j].Timestamp.Before(messages[j-1].Timestamp) {
			t.Fatal("messages must be ordered by timestamp ascending")
		}
	}
}

func TestClearSessionLeavesOthersUntouched(t *testing.T) {
	svc := NewChatService(newFakeChatRepo())
	ctx := context.Background()

	if _, err := svc.AddMessage(ctx, "s1", "hello", true, nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := svc.AddMessage(ctx, "s2", "other session", true, nil); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := svc.ClearSession(ctx, "s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	cleared, _ := svc.GetMessages(ctx, "s1")
	if len(cleared) != 0 {
		t.Fatalf("expected empty session, got %d messages", len(cleared))
	}
	kept, _ := svc.GetMessages(ctx, "s2")
	if len(kept) != 1 {
		t.Fatalf("other sessions must be untouched, got %d messages", len(kept))
	}
}

func TestAddMessageValidation(t *testing.T) {
	svc := NewChatService(newFakeChatRepo())
	ctx := context.Background()

	if _, err := svc.AddMessage(ctx, "", "content", true, nil); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if _, err := svc.AddMessage(ctx, "s1", "   ", true, nil); err == nil {
		t.Fatal("expected error for blank content")
	}
}
