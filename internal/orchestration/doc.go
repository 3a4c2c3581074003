// Package orchestration runs the benchmark: it builds the sequential and
// parallel tasks selected by the configuration, times them one after another,
// derives statistics and speedups, and checks every parallel result against
// its sequential baseline. Presentation is decoupled through the
// ProgressReporter, ResultPresenter and ErrorHandler interfaces.
package orchestration
