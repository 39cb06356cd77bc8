// Package mail parses raw RFC 822 messages into the fields the forwarder
// needs: a sender, a subject, and a readable plain-text body.
//
// Body extraction prefers text/plain parts, walking multipart trees in
// order. When a message only carries HTML, the first text/html part is
// rendered to plain text instead. Extracted bodies are normalized: runs of
// blank lines are collapsed and trailing whitespace is stripped, since
// newsletter mail tends to be generated with generous spacing.
package mail
