package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var rawAgentCard []byte

// AgentCardData holds the validated agent card once LoadAgentCard succeeds.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded agent card and publishes it in
// AgentCardData. It is safe to call from concurrent handlers.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card map[string]interface{}
		if err := json.Unmarshal(rawAgentCard, &card); err != nil {
			loadErr = fmt.Errorf("invalid agent card: %w", err)
			return
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				loadErr = fmt.Errorf("agent card missing field %q", field)
				return
			}
		}
		AgentCardData = rawAgentCard
	})
	return loadErr
}
