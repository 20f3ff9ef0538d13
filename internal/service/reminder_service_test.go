package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ritualplanner/internal/model"
)

func TestReminderService_Sweep(t *testing.T) {
	now := time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)

	t.Run("no due reminders", func(t *testing.T) {
		mockNotes := new(MockNoteRepository)
		mockNotes.On("ListDueReminders", mock.Anything, now).Return([]model.Note{}, nil)

		service := NewReminderService(mockNotes, new(MockUserRepository), new(MockMailSender))
		sent, err := service.Sweep(context.Background(), now)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("one summary mail per owner, all notes marked sent", func(t *testing.T) {
		owner := &model.User{ID: uuid.New(), Name: "Pandit One", Email: "pandit@example.com"}
		notes := []model.Note{
			{ID: uuid.New(), UserID: owner.ID, Person: "Sharma family", Work: "Griha Pravesh"},
			{ID: uuid.New(), UserID: owner.ID, Person: "Verma family", Work: "Satyanarayan Puja"},
		}

		mockNotes := new(MockNoteRepository)
		mockUsers := new(MockUserRepository)
		mockMail := new(MockMailSender)
		mockNotes.On("ListDueReminders", mock.Anything, now).Return(notes, nil)
		mockUsers.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
		mockMail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Sharma family") && strings.Contains(body, "Verma family")
		})).Return(nil).Once()
		mockNotes.On("MarkReminderSent", mock.Anything, notes[0].ID).Return(nil)
		mockNotes.On("MarkReminderSent", mock.Anything, notes[1].ID).Return(nil)

		service := NewReminderService(mockNotes, mockUsers, mockMail)
		sent, err := service.Sweep(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		mockNotes.AssertExpectations(t)
		mockMail.AssertExpectations(t)
	})

	t.Run("mail failure leaves notes unmarked for the next run", func(t *testing.T) {
		owner := &model.User{ID: uuid.New(), Name: "Pandit One", Email: "pandit@example.com"}
		notes := []model.Note{
			{ID: uuid.New(), UserID: owner.ID, Person: "Sharma family", Work: "Griha Pravesh"},
		}

		mockNotes := new(MockNoteRepository)
		mockUsers := new(MockUserRepository)
		mockMail := new(MockMailSender)
		mockNotes.On("ListDueReminders", mock.Anything, now).Return(notes, nil)
		mockUsers.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
		mockMail.On("Send", mock.Anything, owner.Email, mock.Anything, mock.Anything).Return(assert.AnError)

		service := NewReminderService(mockNotes, mockUsers, mockMail)
		sent, err := service.Sweep(context.Background(), now)

		assert.NoError(t, err)
		assert.Zero(t, sent)
		mockNotes.AssertNotCalled(t, "MarkReminderSent", mock.Anything, mock.Anything)
	})
}
