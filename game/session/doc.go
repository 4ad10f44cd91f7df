// Package session stores park sessions for the game service.
//
// Each session owns a ParkEngine, its scenario and a queue of actions
// waiting for a future tick. Sessions are keyed by a case-insensitive ID;
// callers may pick one or let the manager generate a 4-character hex ID.
//
// Persistence:
//
// With a SessionPersistence attached the manager saves new sessions at once,
// loads unknown IDs from storage on demand and can bulk load or save every
// session at startup and shutdown. FilePersistence writes one JSON file per
// session, including the scenario and the pending queue, so a restarted
// server resumes where it stopped. Expiry only evicts sessions from memory;
// the file stays until the session is deleted.
//
// Usage:
//
//	persistence, _ := session.NewFilePersistence("sessions", configMgr)
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", "starter", scenario)
package session
