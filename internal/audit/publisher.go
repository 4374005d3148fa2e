package audit

import (
	"context"
	"encoding/json"

	"github.com/EventStore/EventStore-Client-Go/client"
	"github.com/EventStore/EventStore-Client-Go/messages"
	"github.com/EventStore/EventStore-Client-Go/streamrevision"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Publisher appends lifecycle transitions to EventStoreDB, one stream
// per emergency request. The journal is an append-only record of every
// transition; it is never read back by this service.
type Publisher struct {
	esClient *client.Client
	logger   *zap.SugaredLogger
}

func NewPublisher(connectionString string, logger *zap.SugaredLogger) (*Publisher, error) {

	config, err := client.ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	esClient, err := client.NewClient(config)
	if err != nil {
		return nil, err
	}

	if err := esClient.Connect(); err != nil {
		return nil, err
	}

	return &Publisher{
		esClient: esClient,
		logger:   logger,
	}, nil
}

func (p *Publisher) Append(ctx context.Context, stream, eventType string, payload interface{}) error {

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	eventID, err := uuid.NewV4()
	if err != nil {
		return err
	}

	proposed := messages.ProposedEvent{
		EventID:     eventID,
		EventType:   eventType,
		ContentType: "application/json",
		Data:        data,
	}

	_, err = p.esClient.AppendToStream(ctx, stream, streamrevision.StreamRevisionAny, []messages.ProposedEvent{proposed})
	return err
}

func (p *Publisher) Close() {
	if err := p.esClient.Close(); err != nil {
		p.logger.Warnf("Failed to close eventstore client: %v", err)
	}
}
