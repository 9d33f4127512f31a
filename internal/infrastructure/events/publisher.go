package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Fundbridge/config"
	"Fundbridge/internal/logger"

	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
	Close()
}

// NewPublisher conecta no NATS quando NATS_URL esta definido; sem URL os eventos sao descartados.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if strings.TrimSpace(cfg.NATS.URL) == "" {
		logger.Info().Msg("NATS_URL não definido, eventos de domínio serão descartados")
		return NopPublisher{}, nil
	}
	return NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, cfg.App.Name)
}

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix, clientName string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("Conexão com NATS perdida")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("Reconectado ao NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	logger.Info().Str("url", url).Str("prefix", prefix).Msg("Publicador NATS conectado")
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(Subject(p.prefix, subject), data)
}

// Close envia o que estiver pendente antes de fechar a conexao.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		logger.Warn().Err(err).Msg("Falha ao drenar conexão NATS")
		p.conn.Close()
	}
}

func Subject(prefix, subject string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return subject
	}
	return prefix + "." + subject
}

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	return nil
}

func (NopPublisher) Close() {}
