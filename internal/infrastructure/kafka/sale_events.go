package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Tienda-POS/internal/application/checkout"
)

var _ checkout.EventPublisher = (*SaleEventProducer)(nil)

// ErrBufferFull se devuelve cuando la cola local está llena; el evento se descarta.
var ErrBufferFull = errors.New("kafka: cola de eventos llena")

// ErrClosed se devuelve al publicar después de Close.
var ErrClosed = errors.New("kafka: productor cerrado")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// SaleEventProducer publica SaleCommitted de forma asíncrona: Publish encola y una goroutine escribe.
// La venta ya está confirmada cuando se publica, así que los errores de escritura solo se registran.
type SaleEventProducer struct {
	w            messageWriter
	inbox        chan kafkago.Message
	done         chan struct{}
	log          zerolog.Logger
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewSaleEventProducer crea el productor sobre un kafka.Writer con balanceo por clave (id de venta).
func NewSaleEventProducer(brokers []string, topic string, buf int, log zerolog.Logger) *SaleEventProducer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newSaleEventProducer(w, buf, log)
}

func newSaleEventProducer(w messageWriter, buf int, log zerolog.Logger) *SaleEventProducer {
	if buf <= 0 {
		buf = 256
	}
	return &SaleEventProducer{
		w:            w,
		inbox:        make(chan kafkago.Message, buf),
		done:         make(chan struct{}),
		log:          log,
		writeTimeout: 10 * time.Second,
	}
}

// Start lanza la goroutine que vacía la cola. Termina cuando se llama a Close.
func (p *SaleEventProducer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.log.Error().Err(err).Str("key", string(m.Key)).Msg("no se pudo escribir evento en kafka")
			}
			cancel()
		}
	}()
}

// PublishSaleCommitted arma el sobre y lo encola sin bloquear.
func (p *SaleEventProducer) PublishSaleCommitted(_ context.Context, evt checkout.SaleCommitted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka: serializar payload: %w", err)
	}
	env := Envelope{
		EventID:       uuid.New().String(),
		EventType:     EventSaleCommitted,
		EventVersion:  1,
		OccurredAt:    evt.OccurredAt.UTC(),
		Producer:      producerName,
		CorrelationID: evt.SaleID,
		Payload:       payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: serializar sobre: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(evt.SaleID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventSaleCommitted)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close deja de aceptar eventos, espera a que se escriban los encolados y cierra el writer.
func (p *SaleEventProducer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}
