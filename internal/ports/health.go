package ports

import "context"

type HealthPort interface {
	// Check reports whether the advisory pipeline can serve requests; msg
	// names the collaborators that are wired.
	Check(ctx context.Context, name string) (healthy bool, msg string)
}
