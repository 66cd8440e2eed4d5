// Package registry manages the live set of task agents: creation with
// collision-free ids, lookup, listing in creation order, deletion, and the
// task/chat entry points that resolve an agent by id before delegating to it.
//
// Lifecycle hooks (see HookManager) let the transport layer observe agent
// creation, deletion and finished tasks without the registry knowing about
// any transport.
package registry
