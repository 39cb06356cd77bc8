// Package forward runs the mailbox-to-Discord monitor loop.
//
// The loop polls the mailbox for messages, filters out ignored senders and
// subjects, posts the rest to the webhook, and deletes whatever was
// processed. Delivery failures leave the message in the mailbox so the next
// pass retries it; the mailbox is the only queue and the only state.
//
// Connection errors tear down the session and the monitor redials after a
// delay, indefinitely, until its context is cancelled.
package forward
