// Package operations runs ordered, named steps and tracks their state.
//
// The batch report is an operation whose steps each render one chart file.
// Steps run sequentially in registration order. The first failing step stops
// the operation: it is marked failed, every later step is marked skipped,
// and the failure is returned wrapped in an OperationError naming the step.
//
// Example usage:
//
//	manager := operations.NewManager(logger)
//	for _, step := range operations.ChartSteps(artifacts, paths, renderer) {
//		if err := manager.RegisterStep(step); err != nil {
//			return err
//		}
//	}
//	state, err := manager.Execute(ctx, operationID)
package operations
