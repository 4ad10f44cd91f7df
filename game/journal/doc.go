// Package journal stores every action that went through the execute
// pipeline in SQLite, so a session can be rebuilt by replaying its
// envelopes against the scenario it started from.
package journal
