package domain

import "testing"

func TestTicketInput_Normalize(t *testing.T) {
	got := TicketInput{Subject: " Fuite ", Message: "Salle de bain", Priority: "URGENT", Status: "in-progress"}.Normalize("p1")
	if got.Title != "Fuite" || got.Description != "Salle de bain" {
		t.Fatalf("aliases not resolved: %+v", got)
	}
	if got.Priority != TicketUrgent || got.Status != TicketInProgress || got.ProjectID != "p1" {
		t.Fatalf("unexpected normalization: %+v", got)
	}
	if got.Tags == nil {
		t.Fatalf("tags must never be nil")
	}

	empty := TicketInput{}.Normalize("p1")
	if empty.Title != DefaultTicketTitle || empty.Priority != TicketMedium || empty.Status != TicketOpen {
		t.Fatalf("defaults not applied: %+v", empty)
	}
}

func TestTicket_IsOpen(t *testing.T) {
	for status, want := range map[TicketStatus]bool{
		TicketOpen: true, "active": true, "OPEN": true,
		TicketInProgress: false, TicketResolved: false, TicketClosed: false,
	} {
		tk := Ticket{Status: status}
		if tk.IsOpen() != want {
			t.Fatalf("IsOpen(%q) = %v, want %v", status, !want, want)
		}
	}
}
