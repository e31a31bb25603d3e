package instance

import "github.com/sandwichpos/pos-backend/pkg/env"

// GetID returns the process instance identifier used to tag logs.
func GetID() string {
	return env.First("local", "POS_INSTANCE_ID", "DYNO", "HOSTNAME")
}
