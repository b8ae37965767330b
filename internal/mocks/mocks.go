package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/merahburam/ameo-assets/internal/ai"
	"github.com/merahburam/ameo-assets/internal/models"
	"github.com/merahburam/ameo-assets/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	args := m.Called(ctx, username, email, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) BulkUsernames(ctx context.Context, ids []int) (map[int]string, error) {
	args := m.Called(ctx, ids)
	var names map[int]string
	if val := args.Get(0); val != nil {
		names = val.(map[int]string)
	}
	return names, args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) CreateOrGetConversation(ctx context.Context, userID int, partnerID int) (models.Conversation, error) {
	args := m.Called(ctx, userID, partnerID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) GetConversation(ctx context.Context, conversationID int) (models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) IsParticipant(ctx context.Context, conversationID int, userID int) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ConversationRepositoryMock) ListConversations(ctx context.Context, userID int) ([]models.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.ConversationSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.ConversationSummary)
	}
	return list, args.Error(1)
}

func (m *ConversationRepositoryMock) DeleteConversation(ctx context.Context, conversationID int) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, conversationID int, senderID int, content string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessages(ctx context.Context, conversationID int) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkMessagesRead(ctx context.Context, conversationID int, readerID int) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

type TypingRepositoryMock struct {
	mock.Mock
}

func (m *TypingRepositoryMock) SetTyping(ctx context.Context, conversationID int, userID int, typing bool) error {
	args := m.Called(ctx, conversationID, userID, typing)
	return args.Error(0)
}

func (m *TypingRepositoryMock) GetTyping(ctx context.Context, conversationID int, userID int) (models.TypingStatus, error) {
	args := m.Called(ctx, conversationID, userID)
	var status models.TypingStatus
	if val := args.Get(0); val != nil {
		status = val.(models.TypingStatus)
	}
	return status, args.Error(1)
}

type AIClientMock struct {
	mock.Mock
}

func (m *AIClientMock) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.ConversationRepository = (*ConversationRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.TypingRepository = (*TypingRepositoryMock)(nil)
var _ ai.Client = (*AIClientMock)(nil)
