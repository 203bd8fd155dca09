package equipment

import "fmt"

// ErrNotInitialized indicates equipment whose telemetry has not been seen
// yet, Refresh the system before issuing commands.
var ErrNotInitialized = fmt.Errorf("equipment not initialized")

// ErrNotReady indicates equipment in a transitional state, or a controller
// in service or configuration mode, that rejects commands right now.
var ErrNotReady = fmt.Errorf("equipment not ready")
