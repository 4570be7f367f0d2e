package logging

import "go.uber.org/zap"

// NewLogger builds the service logger. Development mode prints human-readable
// output; production mode emits JSON.
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
