// Package mailbox wraps an IMAP session for the forwarder.
//
// The INBOX is treated as a work queue: every message present is fetched in
// full, and messages the forwarder has finished with are flagged deleted and
// expunged. Messages that fail to forward keep their place in the queue and
// are picked up again on the next pass, which also makes restarts safe.
//
// Connections use implicit TLS. Any protocol or transport error invalidates
// the session; callers are expected to close it and dial a fresh one.
package mailbox
