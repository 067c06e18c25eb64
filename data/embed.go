// Package data embeds the scenario files shipped with the game so the
// binary runs without any external assets.
package data

import "embed"

// DefaultScenario is the scenario loaded when SCENARIO is not configured.
const DefaultScenario = "scenarios/dream_market.yaml"

//go:embed scenarios/*.yaml
var FS embed.FS
