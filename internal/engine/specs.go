package engine

import (
	"github.com/screenloom/screenloom/internal/domain/prompt"
	"github.com/screenloom/screenloom/internal/protocol"
	"github.com/screenloom/screenloom/internal/shared/id"
)

// SpecsFromPrompt parses a free-form prompt into screen specs with fresh
// ids, all targeting the given device type. This is the glue between what
// the user typed and a RequestGeneration call.
func SpecsFromPrompt(text, deviceType string) []protocol.ScreenSpec {
	parsed := prompt.Parse(text)
	specs := make([]protocol.ScreenSpec, 0, len(parsed))
	for _, p := range parsed {
		specs = append(specs, protocol.ScreenSpec{
			ID:          id.NewScreenID().String(),
			Name:        p.Name,
			Description: p.Description,
			DeviceType:  deviceType,
		})
	}
	return specs
}
