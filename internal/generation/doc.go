// Package generation manages the lifecycle of asynchronous music generation
// tasks. It provides mechanisms for accepting a request, queuing it as a
// background task, executing the (simulated) synthesis without blocking the
// submitter, and serving consistent status reads to concurrent pollers.
// The submitting path's only link to an accepted task is its ID; all
// execution results flow back through the task store.
package generation
