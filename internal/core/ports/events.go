// Package ports holds interfaces that cross the core boundary but belong to
// neither the repository nor the service facade groups.
package ports

// EventPublisher publishes ledger lifecycle events to an external broker.
// Implementations must not be load-bearing for correctness: the engine treats
// publish failures as log-and-continue.
type EventPublisher interface {
	Publish(topic string, event any) error
}
