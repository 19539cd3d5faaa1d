// Package source gathers raw input text and discovers candidate
// subscription URLs inside it.
//
// Input is a file (read whole) or a directory (every regular file inside,
// non-recursively, joined with newlines; unreadable files are skipped).
// URL discovery is a permissive pattern scan: anything that looks like an
// http(s) link is a candidate, and malformed candidates are left for the
// reachability probe to reject. Text that contains anchor tags
// additionally gets an HTML-aware pass so links buried in markup are not
// missed by the pattern.
package source
