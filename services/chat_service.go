package services

import (
	"context"

	"chat-room/contract"
	"chat-room/domain"
	"chat-room/domain/search"
	"chat-room/repositories"
	"chat-room/runtime"
)

type IChatService interface {
	Post(ctx context.Context, author, text string) (domain.Message, error)
	History() []domain.Message
	Stats() map[string]int
	Search(ctx context.Context, raw string) ([]domain.Message, error)
	Subscribe(sink contract.EventSink) contract.SubscriberID
	Unsubscribe(id contract.SubscriberID)
	Subscribers() int
}

// ChatService is the transport-facing facade over the dispatcher, the
// store and the registry. Handlers never touch those directly.
type ChatService struct {
	dispatcher *runtime.Dispatcher
	store      contract.IMessageStore
	registry   contract.IRegistry
	index      repositories.ISearchIndex
}

func NewChatService(dispatcher *runtime.Dispatcher, store contract.IMessageStore,
	registry contract.IRegistry, index repositories.ISearchIndex) *ChatService {
	return &ChatService{
		dispatcher: dispatcher,
		store:      store,
		registry:   registry,
		index:      index,
	}
}

func (s *ChatService) Post(ctx context.Context, author, text string) (domain.Message, error) {
	return s.dispatcher.Publish(ctx, author, text)
}

func (s *ChatService) History() []domain.Message {
	return s.store.AllMessages()
}

func (s *ChatService) Stats() map[string]int {
	return s.store.Counts()
}

func (s *ChatService) Search(ctx context.Context, raw string) ([]domain.Message, error) {
	return s.index.Search(ctx, search.Parse(raw))
}

func (s *ChatService) Subscribe(sink contract.EventSink) contract.SubscriberID {
	return s.registry.Register(sink)
}

func (s *ChatService) Unsubscribe(id contract.SubscriberID) {
	s.registry.Unregister(id)
}

func (s *ChatService) Subscribers() int {
	return s.registry.Len()
}
