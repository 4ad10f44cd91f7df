package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Messages holds informational lines; otherwise it
// accumulates the problems that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
	Warnings []string
}

// validateScenario loads a scenario file, applies the server's own
// validation and then checks that the park can grow.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(filePath),
		Valid:    true,
		Messages: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := engine.ParseScenarioConfig(data)
	if err != nil {
		result.Valid = false
		result.Messages = append(result.Messages, err.Error())
		return result
	}

	ownedCount, saleCount := 0, 0
	for _, row := range config.Layout {
		for _, char := range row {
			if char == 'S' {
				saleCount++
			} else if char != 'N' {
				ownedCount++
			}
		}
	}

	if ownedCount == 0 {
		result.Valid = false
		result.Messages = append(result.Messages, "Must have at least 1 owned tile to build on")
		return result
	}

	unreachable := unreachableLand(config.Layout)
	if len(unreachable) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d/%d for-sale tiles do not touch land the park could own", len(unreachable), saleCount))
		for i, p := range unreachable {
			if i == 5 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("... and %d more", len(unreachable)-5))
				break
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("Isolated land at (%d,%d)", p.X, p.Y))
		}
	}

	piece := engine.TrackPieceCost(engine.RideTypeMaze, engine.TrackMaze)
	if config.StartingCash < piece {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Starting cash %s does not cover one maze tile (%s)",
				engine.FormatMoney(config.StartingCash), engine.FormatMoney(piece)))
	}

	result.Messages = append(result.Messages,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Map: %dx%d", config.Width, config.Height),
		fmt.Sprintf("✓ Owned tiles: %d", ownedCount),
		fmt.Sprintf("✓ For sale: %d at %s", saleCount, engine.FormatMoney(config.LandPrice)),
		fmt.Sprintf("✓ Cash: %s", engine.FormatMoney(config.StartingCash)),
	)
	return result
}

// unreachableLand returns for-sale tiles that cannot join the park. Buying
// land only makes sense next to land the park owns or can own, so it floods
// out from owned tiles across owned and for-sale tiles in 4 directions.
func unreachableLand(layout []string) []engine.Position {
	height := len(layout)
	if height == 0 {
		return nil
	}

	ownable := func(x, y int) bool {
		if y < 0 || y >= height || x < 0 || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != 'N'
	}

	visited := make(map[engine.Position]bool)
	var queue []engine.Position
	for y, row := range layout {
		for x := range row {
			if ownable(x, y) && row[x] != 'S' {
				pos := engine.Position{X: x, Y: y}
				visited[pos] = true
				queue = append(queue, pos)
			}
		}
	}

	directions := []engine.Position{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range directions {
			next := engine.Position{X: current.X + dir.X, Y: current.Y + dir.Y}
			if !visited[next] && ownable(next.X, next.Y) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []engine.Position
	for y, row := range layout {
		for x := range row {
			pos := engine.Position{X: x, Y: y}
			if row[x] == 'S' && !visited[pos] {
				unreachable = append(unreachable, pos)
			}
		}
	}
	return unreachable
}
