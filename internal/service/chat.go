package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"invoiceapi/internal/chat"
	"invoiceapi/internal/vanna"
)

// NLClient is the optional external natural-language query service.
type NLClient interface {
	Configured() bool
	GenerateSQL(ctx context.Context, question string) (*chat.Answer, error)
}

// ChatService answers "chat with data" questions. When the external NL
// service is configured it is asked first; on any failure the local keyword
// dispatcher answers instead — deterministically, without retries.
type ChatService interface {
	Ask(ctx context.Context, query string) (*chat.Answer, error)
}

type chatService struct {
	dispatcher *chat.Dispatcher
	nl         NLClient
	log        zerolog.Logger
}

// NewChatService constructs a ChatService. nl may be an unconfigured client.
func NewChatService(dispatcher *chat.Dispatcher, nl NLClient, log zerolog.Logger) ChatService {
	return &chatService{
		dispatcher: dispatcher,
		nl:         nl,
		log:        log.With().Str("component", "chat_service").Logger(),
	}
}

func (s *chatService) Ask(ctx context.Context, query string) (*chat.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}

	if s.nl != nil && s.nl.Configured() {
		ans, err := s.nl.GenerateSQL(ctx, query)
		if err == nil {
			s.log.Debug().Str("query", query).Msg("answered by external NL service")
			return ans, nil
		}
		s.log.Warn().Err(err).Msg("external NL service unavailable, using keyword dispatch")
	}

	return s.dispatcher.Dispatch(ctx, query)
}

// vannaAdapter bridges the vanna client to the chat answer type.
type vannaAdapter struct {
	client *vanna.Client
}

// NewVannaNLClient wraps a vanna.Client as an NLClient.
func NewVannaNLClient(client *vanna.Client) NLClient {
	return &vannaAdapter{client: client}
}

func (a *vannaAdapter) Configured() bool {
	return a.client.Configured()
}

func (a *vannaAdapter) GenerateSQL(ctx context.Context, question string) (*chat.Answer, error) {
	ans, err := a.client.GenerateSQL(ctx, question)
	if err != nil {
		return nil, err
	}
	return &chat.Answer{Answer: ans.Answer, SQL: ans.SQL, Results: ans.Results}, nil
}
