package service

import (
	"context"
	"fmt"
	"strings"

	"oficina-api/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// ChatModel answers a single free-form question.
type ChatModel interface {
	Ask(ctx context.Context, question string) (string, error)
}

type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

var _ ChatModel = (*LLMService)(nil)

// buildSystemInstruction describes the workshop management system to the model.
func buildSystemInstruction(company string) string {
	return fmt.Sprintf(`Você é um assistente de análise de dados da oficina automotiva "%s", que usa um sistema de gestão.

O sistema possui:
- Orçamentos com dados do cliente, do veículo e dos serviços
- Transações financeiras categorizadas (entradas e saídas)
- Funcionários e seus cargos
- Relatórios financeiros e painel com indicadores mensais

Tabelas disponíveis: quotes (orçamentos), services (itens do orçamento), transactions (transações),
transaction_categories (categorias), employees (funcionários).

IMPORTANTE: você NÃO tem acesso direto ao banco de dados. Forneça apenas análises e sugestões
baseadas no contexto do negócio. Quando a pergunta depender de dados específicos, explique que é
preciso consultá-los e indique como obter a informação (por exemplo, pela busca de orçamentos ou
de transações com um período como "últimos 30 dias" ou "mês passado").

Responda de forma clara e profissional em português brasileiro.`, company)
}

func NewLLMService(cfg *config.GigaChatConfig, company string, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction(company)
	model.Temperature = 0.3

	logger.Info("Using GigaChat model")

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *LLMService) Ask(ctx context.Context, question string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: question},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return sanitizeUTF8(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
