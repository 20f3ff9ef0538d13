package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ritualplanner/internal/mail"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// ReminderService mails owners about notes whose reminder date has arrived.
// The sweep is idempotent: a note is marked sent before the next run sees it.
type ReminderService struct {
	noteRepo repository.NoteRepository
	userRepo repository.UserRepository
	mailer   mail.Sender
}

// NewReminderService creates a new reminder service.
func NewReminderService(noteRepo repository.NoteRepository, userRepo repository.UserRepository, mailer mail.Sender) *ReminderService {
	return &ReminderService{noteRepo: noteRepo, userRepo: userRepo, mailer: mailer}
}

// Sweep finds all due, unsent reminders, mails one summary per owner and
// marks the notes sent. Returns the number of notes reminded.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	due, err := s.noteRepo.ListDueReminders(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	byUser := make(map[uuid.UUID][]model.Note)
	for _, note := range due {
		byUser[note.UserID] = append(byUser[note.UserID], note)
	}

	sent := 0
	for userID, notes := range byUser {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			slog.Warn("reminder owner lookup failed", "user_id", userID, "error", err)
			continue
		}

		if err := s.mailer.Send(ctx, user.Email, "RitualPlanner reminders", buildSummary(user.Name, notes)); err != nil {
			slog.Warn("reminder mail failed", "user_id", userID, "error", err)
			continue
		}

		for _, note := range notes {
			if err := s.noteRepo.MarkReminderSent(ctx, note.ID); err != nil {
				slog.Warn("mark reminder sent failed", "note_id", note.ID, "error", err)
				continue
			}
			sent++
		}
	}
	return sent, nil
}

func buildSummary(name string, notes []model.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYou have %d reminder(s) due:\n\n", name, len(notes))
	for _, note := range notes {
		fmt.Fprintf(&b, "- %s: %s (noted %s)", note.Person, note.Work, note.NoteDate.Format("2006-01-02"))
		if note.NoteText != "" {
			fmt.Fprintf(&b, ": %s", note.NoteText)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
