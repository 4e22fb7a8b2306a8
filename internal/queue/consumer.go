package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// AuditConsumer reads the lifecycle queue and appends one line per event to
// a log file.
type AuditConsumer struct {
    url     string
    queue   string
    logPath string
}

// NewAuditConsumer returns a consumer writing to logPath.
func NewAuditConsumer(url, logPath string) *AuditConsumer {
    return &AuditConsumer{url: url, queue: LifecycleQueue, logPath: logPath}
}

// Run keeps consuming until ctx is cancelled, reconnecting with exponential
// backoff (1s doubling up to 30s) when the broker goes away.  It returns
// ctx.Err() once cancelled.
func (c *AuditConsumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            slog.Warn("audit-consumer: dial failed", "err", err, "retry_in", backoff.String())
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        slog.Warn("audit-consumer: consume loop ended; reconnecting", "err", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *AuditConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        slog.Warn("audit-consumer: set QoS failed", "err", err)
    }
    if err := declare(ch, c.queue); err != nil {
        return err
    }
    msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := c.Handle(d.Body); err != nil {
            slog.Error("audit-consumer: handle message failed", "err", err)
            _ = d.Nack(false, false) // do not requeue poison messages
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// Handle decodes one message body and appends it to the audit log.
func (c *AuditConsumer) Handle(body []byte) error {
    var ev UserEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.UserID == "" {
        return errors.New("event without type or user_id")
    }

    if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(ev.Line()); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// sleep waits for d or until ctx is done; false means ctx is done.
func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
