// Package providers contains dependency injection providers for the TechnoZen server.
package providers

import "time"

// shutdownTimeout bounds graceful shutdown of long-lived resources.
const shutdownTimeout = 10 * time.Second
