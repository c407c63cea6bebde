package notifier

import "context"

// Notifier posts the class digest with the notes attached.
type Notifier interface {
	Send(ctx context.Context, message string, files []string) error
}
