package eventbus

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	nats "github.com/nats-io/nats.go"
)

const (
	defaultStream = "CASTLE_EVENTS"
	subjectRoot   = "editor"
)

// Заголовки NATS-сообщения, переносящие поля конверта.
// Nats-Msg-Id дополнительно включает дедупликацию на стороне JetStream.
const (
	headerMsgID     = "Nats-Msg-Id"
	headerSource    = "Editor-Source"
	headerEvent     = "Editor-Event"
	headerVersion   = "Editor-Version"
	headerTimestamp = "Editor-Timestamp"
)

// subjectFor возвращает subject для типа события: editor.block_placed
func subjectFor(eventType string) string {
	return subjectRoot + "." + eventType
}

// msgFromEnvelope кодирует конверт в NATS-сообщение.
// Полезная нагрузка остаётся телом сообщения, остальные поля конверта
// уходят в заголовки — внешний потребитель может фильтровать по ним,
// не разбирая JSON.
func msgFromEnvelope(ev *Envelope) *nats.Msg {
	header := nats.Header{}
	header.Set(headerMsgID, ev.ID)
	header.Set(headerSource, ev.Source)
	header.Set(headerEvent, ev.EventType)
	header.Set(headerVersion, strconv.Itoa(ev.Version))
	header.Set(headerTimestamp, ev.Timestamp.Format(time.RFC3339Nano))

	return &nats.Msg{
		Subject: subjectFor(ev.EventType),
		Header:  header,
		Data:    ev.Payload,
	}
}

// envelopeFromMsg восстанавливает конверт из NATS-сообщения
func envelopeFromMsg(msg *nats.Msg) *Envelope {
	version, _ := strconv.Atoi(msg.Header.Get(headerVersion))
	timestamp, _ := time.Parse(time.RFC3339Nano, msg.Header.Get(headerTimestamp))

	return &Envelope{
		ID:        msg.Header.Get(headerMsgID),
		Timestamp: timestamp,
		Source:    msg.Header.Get(headerSource),
		EventType: msg.Header.Get(headerEvent),
		Version:   version,
		Payload:   msg.Data,
	}
}

// JetStreamBus реализует EventBus поверх NATS JetStream.
// Используется, когда события редактора должны быть видны внешним
// потребителям (инструменты наблюдения, интеграции).
type JetStreamBus struct {
	nc        *nats.Conn
	js        nats.JetStreamContext
	stream    string
	published uint64
	consumed  uint64
	dropped   uint64
}

// NewJetStreamBus подключается к кластеру NATS и гарантирует наличие стрима
// с subject'ами editor.>. url: nats://127.0.0.1:4222.
func NewJetStreamBus(url, stream string, retention time.Duration) (*JetStreamBus, error) {
	if stream == "" {
		stream = defaultStream
	}

	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Drain()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if _, err := js.StreamInfo(stream); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      stream,
			Subjects:  []string{subjectRoot + ".>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    retention,
			Storage:   nats.FileStorage,
			// Окно дедупликации по Nats-Msg-Id (ID конверта)
			Duplicates: 2 * time.Minute,
		})
		if err != nil {
			nc.Drain()
			return nil, fmt.Errorf("add stream: %w", err)
		}
	}

	return &JetStreamBus{nc: nc, js: js, stream: stream}, nil
}

// Publish публикует конверт в subject его типа события
func (jb *JetStreamBus) Publish(ctx context.Context, ev *Envelope) error {
	_, err := jb.js.PublishMsg(msgFromEnvelope(ev))
	if err != nil {
		atomic.AddUint64(&jb.dropped, 1)
		return err
	}
	atomic.AddUint64(&jb.published, 1)
	return nil
}

// Subscribe создаёт durable consumer и вызывает handler асинхронно.
// Подписка на один тип события использует точный subject; остальные
// фильтры применяются на стороне потребителя.
func (jb *JetStreamBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	subj := subjectRoot + ".>"
	if len(f.Types) == 1 {
		subj = subjectFor(f.Types[0])
	}

	durable := nats.Durable(fmt.Sprintf("sub_%d", time.Now().UnixNano()))

	natSub, err := jb.js.Subscribe(subj, func(msg *nats.Msg) {
		ev := envelopeFromMsg(msg)
		if matchFilter(ev, f) {
			h(ctx, ev)
			atomic.AddUint64(&jb.consumed, 1)
		}
		_ = msg.Ack()
	}, nats.ManualAck(), durable, nats.AckWait(30*time.Second))
	if err != nil {
		return nil, err
	}

	return &jetSub{natSub}, nil
}

type jetSub struct {
	s *nats.Subscription
}

func (j *jetSub) Unsubscribe() {
	_ = j.s.Unsubscribe()
}

// Close разрывает соединение с NATS
func (jb *JetStreamBus) Close() {
	jb.nc.Drain()
}

// Metrics возвращает текущие счётчики шины
func (jb *JetStreamBus) Metrics() Stats {
	return Stats{
		Published: atomic.LoadUint64(&jb.published),
		Consumed:  atomic.LoadUint64(&jb.consumed),
		Dropped:   atomic.LoadUint64(&jb.dropped),
	}
}
