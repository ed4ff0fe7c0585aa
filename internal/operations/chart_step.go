package operations

import (
	"context"
	"strings"

	"metadash/internal/charts"
	"metadash/internal/config"
)

// ChartStep renders one report artifact to a file
type ChartStep struct {
	artifact charts.Artifact
	path     string
	renderer *charts.Renderer
}

// NewChartStep creates a step writing artifact into the output directory
func NewChartStep(artifact charts.Artifact, paths *config.Paths, renderer *charts.Renderer) *ChartStep {
	return &ChartStep{
		artifact: artifact,
		path:     paths.ArtifactPath(artifact.Name),
		renderer: renderer,
	}
}

// ID returns the artifact file name without extension
func (s *ChartStep) ID() string {
	return strings.TrimSuffix(s.artifact.Name, ".png")
}

// Name returns the artifact file name
func (s *ChartStep) Name() string {
	return s.artifact.Name
}

// Path returns the file the step writes
func (s *ChartStep) Path() string {
	return s.path
}

// Execute renders the chart and replaces the file
func (s *ChartStep) Execute(ctx context.Context) error {
	return s.renderer.WriteFile(ctx, s.path, s.artifact.Draw)
}

// ChartSteps builds one step per artifact, preserving order
func ChartSteps(artifacts []charts.Artifact, paths *config.Paths, renderer *charts.Renderer) []Step {
	steps := make([]Step, len(artifacts))
	for i, a := range artifacts {
		steps[i] = NewChartStep(a, paths, renderer)
	}
	return steps
}
