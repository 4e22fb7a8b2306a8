package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "log/slog"
    "net"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends UserEvents to the lifecycle queue.  Each Publish dials
// the broker, declares the queue and closes everything again; the event
// volume is one message per write request, so a long-lived channel is not
// worth its reconnect handling.
type Publisher struct {
    url     string
    queue   string
    timeout time.Duration // upper bound for one Publish, dial included
}

// DefaultPublishTimeout bounds a Publish when the caller's context allows
// longer.  Publishing runs after the commit, inside the request.
const DefaultPublishTimeout = 2 * time.Second

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url, queue: LifecycleQueue, timeout: DefaultPublishTimeout}
}

// Publish delivers ev as a persistent JSON message.  Errors are logged and
// returned; callers treat publishing as best effort.
func (p *Publisher) Publish(ctx context.Context, ev UserEvent) error {
    ctx, cancel := context.WithTimeout(ctx, p.timeout)
    defer cancel()

    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: dialContext(ctx)})
    if err != nil {
        slog.Warn("rabbitmq: dial failed", "err", err)
        return fmt.Errorf("dial broker: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        slog.Warn("rabbitmq: channel open failed", "err", err)
        return fmt.Errorf("open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if err := declare(ch, p.queue); err != nil {
        slog.Warn("rabbitmq: queue declare failed", "queue", p.queue, "err", err)
        return err
    }

    pub, err := publishing(ev)
    if err != nil {
        return err
    }
    if err := ch.PublishWithContext(ctx,
        "",      // default exchange
        p.queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    ); err != nil {
        slog.Warn("rabbitmq: publish failed", "type", ev.Type, "err", err)
        return fmt.Errorf("publish %s: %w", ev.Type, err)
    }
    return nil
}

// dialContext connects within ctx and keeps ctx's deadline on the socket
// for the AMQP handshake; the library clears it once the connection is open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
    return func(network, addr string) (net.Conn, error) {
        var d net.Dialer
        conn, err := d.DialContext(ctx, network, addr)
        if err != nil {
            return nil, err
        }
        if dl, ok := ctx.Deadline(); ok {
            if err := conn.SetDeadline(dl); err != nil {
                _ = conn.Close()
                return nil, err
            }
        }
        return conn, nil
    }
}

// Discard is an EventPublisher that drops every event.  It is used when
// events are disabled.
type Discard struct{}

func (Discard) Publish(context.Context, UserEvent) error { return nil }

func publishing(ev UserEvent) (amqp.Publishing, error) {
    body, err := json.Marshal(ev)
    if err != nil {
        return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
    }
    return amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         string(ev.Type),
        Body:         body,
    }, nil
}

func declare(ch *amqp.Channel, name string) error {
    _, err := ch.QueueDeclare(
        name,
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,
    )
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    return nil
}
