// Package pareto identifies non-dominated candidates in a multi-objective
// score table.
//
// A candidate dominates another when it is at least as good in every
// objective and strictly better in at least one. All objectives are
// maximized; callers with minimize-direction objectives should negate those
// columns before filtering. The front of a non-empty table is never empty:
// the maximum of any single column cannot be dominated on that column.
//
// Front and FrontMask run the O(N²·M) pairwise comparison with a
// short-circuit on the first dominator. FrontParallel partitions candidates
// across workers; each worker reads the shared table and writes only its own
// membership flags, so the two variants always agree.
//
// Equal score vectors never dominate each other, so duplicates all stay on
// the front; deduplication is the caller's concern.
package pareto
