// Package watch notices commits made to the word database by other processes.
//
// The Watcher observes the database file and its write-ahead log with
// fsnotify. Bursts of events are debounced and the resulting callbacks are
// throttled with a token bucket, so a busy writer in another process costs
// at most a few re-reads per second.
package watch
